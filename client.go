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
	"net"
	"strings"

	"github.com/google/uuid"
)

const crlf = "\x0d\x0a"

// Client is one connected user. Its inbound buffer (the wire framer is
// per-connection state, spec invariant 6) lives in its Processor reader
// goroutine. It holds a non-owning back-pointer to the registry, used
// only so that a failed
// write can report itself for zombie-marking without every call site
// having to check the result.
type Client struct {
	id       uuid.UUID
	reg      *Registry
	conn     net.Conn
	host     string
	nickname string
	username string
	realname string

	registered bool
	zombie     bool
	quitReason string

	channel *Channel
}

// NewClient constructs an unregistered client for a freshly accepted
// connection. It does not touch the registry; the client's Processor
// enqueues an eventConnect when the reader goroutine starts.
func NewClient(reg *Registry, host string, conn net.Conn) *Client {
	return &Client{
		id:   uuid.New(),
		reg:  reg,
		conn: conn,
		host: TruncateIdentifier(host, maxHostLength),
	}
}

func (c *Client) String() string {
	nick := c.nickname
	if nick == "" {
		nick = "*"
	}
	return nick + "!" + c.username + "@" + c.host
}

// Processor blockingly reads everything the remote client sends, splits
// it into lines with the client's own InboundBuffer, and forwards each
// parsed message to the registry's single mutator goroutine over sink.
func (c *Client) Processor(sink chan<- ClientEvent) {
	sink <- ClientEvent{client: c, kind: eventConnect}

	var inbound InboundBuffer
	readBuf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(readBuf)
		if n > 0 {
			for _, line := range inbound.Append(readBuf[:n]) {
				sink <- ClientEvent{client: c, kind: eventMessage, msg: ParseMessage(line)}
			}
		}
		if err != nil {
			sink <- ClientEvent{client: c, kind: eventDisconnect, text: err.Error()}
			return
		}
	}
}

// Msg sends text as-is with CRLF appended. A write failure marks the
// client zombie through the registry; callers never need to recheck the
// client's liveness after calling Msg.
func (c *Client) Msg(text string) {
	if c.zombie {
		return
	}
	if _, err := c.conn.Write([]byte(text + crlf)); err != nil {
		c.reg.markZombie(c, "Write error")
	}
}

// Reply sends a server-originated message, prefixed with ":<hostname> ".
func (c *Client) Reply(text string) {
	c.reg.debugf(DebugReplies, "-> %s: %s", c, text)
	c.Msg(":" + c.reg.hostname + " " + text)
}

// ReplyParts joins code and text, treating the last part as the
// trailing parameter (prefixed with ":").
func (c *Client) ReplyParts(code string, text ...string) {
	parts := append([]string{code}, text...)
	parts[len(parts)-1] = ":" + parts[len(parts)-1]
	c.Reply(strings.Join(parts, " "))
}

// ReplyNicknamed is ReplyParts with the client's own current nickname
// (or "*" if it doesn't have one yet) inserted as the target.
func (c *Client) ReplyNicknamed(code string, text ...string) {
	target := c.nickname
	if target == "" {
		target = "*"
	}
	c.ReplyParts(code, append([]string{target}, text...)...)
}
