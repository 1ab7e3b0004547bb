// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerCharSet = 31

var progress = spinner.New(
	spinner.CharSets[spinnerCharSet], 100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
	spinner.WithColor("yellow"),
)

// StartSpinner shows the ~working~ spinner with the given message.
func StartSpinner(message string) {
	SetSpinner(message)
	progress.Start()
}

// SetSpinner changes the message next to the spinner.
func SetSpinner(message string) {
	progress.Lock()
	progress.Suffix = " " + message
	progress.Unlock()
}

// PauseSpinner hides the spinner until it is started again.
func PauseSpinner() {
	progress.Stop()
}
