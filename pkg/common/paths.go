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

package common

import "path/filepath"

// ConfigFile is the path to the model parameters used by default.
func ConfigFile() string {
	return filepath.Join(Directory, "config.yaml")
}

// RatingsFile is the path to the rating database used by default.
func RatingsFile() string {
	return filepath.Join(Directory, "ratings.yaml")
}
