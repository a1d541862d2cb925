// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalidTuning wraps every validation failure of Load and Validate.
var ErrInvalidTuning = errors.New("config: invalid tuning")
