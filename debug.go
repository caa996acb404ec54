/*
goircd -- minimalistic simple Internet Relay Chat (IRC) server
Copyright (C) 2014 Sergey Matveev <stargrave@stargrave.org>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DebugMask is the -D flag's bit set, mirrored from the original
// debug.h categories. It never affects protocol semantics, only which
// diagnostics reach standard error.
type DebugMask uint32

const (
	DebugNone     DebugMask = 0x00
	DebugErrs     DebugMask = 0x01
	DebugInit     DebugMask = 0x02
	DebugSockets  DebugMask = 0x04
	DebugSplit    DebugMask = 0x08
	DebugInput    DebugMask = 0x10
	DebugClients  DebugMask = 0x20
	DebugChannels DebugMask = 0x40
	DebugReplies  DebugMask = 0x80
	DebugAll      DebugMask = 0xffffffff
)

var debugNames = map[string]DebugMask{
	"none":     DebugNone,
	"errs":     DebugErrs,
	"init":     DebugInit,
	"sockets":  DebugSockets,
	"split":    DebugSplit,
	"input":    DebugInput,
	"clients":  DebugClients,
	"channels": DebugChannels,
	"replies":  DebugReplies,
	"all":      DebugAll,
}

// ParseDebugMask parses the -D argument: a numeric mask (decimal or
// 0x-prefixed hex) or a comma-separated
// list of category names.
func ParseDebugMask(arg string) (DebugMask, error) {
	if arg == "" {
		return DebugNone, nil
	}
	if n, err := strconv.ParseUint(arg, 0, 32); err == nil {
		return DebugMask(n), nil
	}
	var mask DebugMask
	for _, name := range strings.Split(arg, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		bit, ok := debugNames[name]
		if !ok {
			return 0, errors.Errorf("unknown debug category %q", name)
		}
		mask |= bit
	}
	return mask, nil
}

func (m DebugMask) has(bit DebugMask) bool {
	return m&bit != 0
}
