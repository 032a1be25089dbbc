// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	errNoDatabaseDSN   = errors.New("database DSN is not set")
	errNoServerAddress = errors.New("server HTTP address is not set")
)
