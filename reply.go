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

// Numeric reply codes, the subset spec §6 lists as actually produced.
const (
	rplListStart  = "321"
	rplList       = "322"
	rplListEnd    = "323"
	rplEndOfWho   = "315"
	rplWhoReply   = "352"
	rplNamReply   = "353"
	rplEndOfNames = "366"
	rplMotd       = "372"
	rplMotdStart  = "375"
	rplEndOfMotd  = "376"

	errNoSuchNick        = "401"
	errNoSuchChannel     = "403"
	errNoRecipient       = "411"
	errNoTextToSend      = "412"
	errUnknownCommand    = "421"
	errNoNicknameGiven   = "431"
	errErroneousNickname = "432"
	errNicknameInUse     = "433"
	errNotOnChannel      = "442"
	errNotRegistered     = "451"
	errNeedMoreParams    = "461"
	errAlreadyRegistered = "462"
)

// motdLines is the server's fixed message of the day banner.
var motdLines = []string{
	"Welcome to this simple IRC server.",
}

// sendMotd emits the MOTD triplet immediately upon successful
// registration.
func (reg *Registry) sendMotd(c *Client) {
	c.ReplyNicknamed(rplMotdStart, "- "+reg.hostname+" Message of the day - ")
	for _, line := range motdLines {
		c.ReplyNicknamed(rplMotd, "- "+line)
	}
	c.ReplyNicknamed(rplEndOfMotd, "End of /MOTD command")
}
