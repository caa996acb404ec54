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

type eventType int

const (
	eventConnect eventType = iota
	eventMessage
	eventDisconnect
)

// ClientEvent is the single message type flowing from a client's reader
// goroutine to the registry's Processor goroutine. All state mutation
// happens inside Processor, so the meaning of an event is decided there,
// never by the goroutine that produced it.
type ClientEvent struct {
	client *Client
	kind   eventType
	msg    Message
	text   string
}

func (e ClientEvent) String() string {
	switch e.kind {
	case eventConnect:
		return e.client.String() + ": connected"
	case eventDisconnect:
		return e.client.String() + ": disconnected: " + e.text
	default:
		return e.client.String() + ": " + e.msg.Command
	}
}
