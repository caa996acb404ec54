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

import "strings"

type handlerFunc func(reg *Registry, c *Client, msg Message)

type commandSpec struct {
	needsRegistration bool
	minParams         int
	handler           handlerFunc
}

// commandTable is the dispatcher's 8-row command table (spec §4.5).
var commandTable = map[string]commandSpec{
	"NICK":    {needsRegistration: false, minParams: 0, handler: handleNick},
	"USER":    {needsRegistration: false, minParams: 4, handler: handleUser},
	"QUIT":    {needsRegistration: true, minParams: 0, handler: handleQuit},
	"JOIN":    {needsRegistration: true, minParams: 1, handler: handleJoin},
	"PART":    {needsRegistration: true, minParams: 1, handler: handlePart},
	"LIST":    {needsRegistration: true, minParams: 0, handler: handleList},
	"PRIVMSG": {needsRegistration: true, minParams: 0, handler: handlePrivmsg},
	"WHO":     {needsRegistration: true, minParams: 0, handler: handleWho},
}

// dispatch routes one parsed message to its handler, per the algorithm
// in spec §4.5.
func (reg *Registry) dispatch(c *Client, msg Message) {
	if msg.Command == "" {
		c.ReplyParts(errNeedMoreParams, "*", "Not enough parameters")
		return
	}

	cmd := strings.ToUpper(msg.Command)
	spec, ok := commandTable[cmd]
	if !ok {
		c.ReplyNicknamed(errUnknownCommand, cmd, "Unknown command")
		return
	}

	// Open question resolved per spec §9: ignore the command iff the
	// prefix is present, the client has a nickname, and the prefix does
	// NOT equal that nickname (the source's inverted variant is rejected).
	if msg.Prefix != "" && c.nickname != "" && msg.Prefix != c.nickname {
		return
	}

	if spec.needsRegistration && !c.registered {
		c.ReplyNicknamed(errNotRegistered, "You have not registered")
		return
	}

	if msg.NParams() < spec.minParams {
		c.ReplyNicknamed(errNeedMoreParams, cmd, "Not enough parameters")
		return
	}

	spec.handler(reg, c, msg)
}
