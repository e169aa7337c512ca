package config

import "errors"

// ErrInvalidConfig wraps every reason Validate rejects a Config.
var ErrInvalidConfig = errors.New("config: invalid configuration")
