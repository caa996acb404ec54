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

// Channel is a named room. It holds only non-owning references to its
// members; the registry owns the clients themselves.
type Channel struct {
	name    string
	members []*Client
}

func (ch *Channel) AddMember(c *Client) {
	ch.members = append(ch.members, c)
}

func (ch *Channel) RemoveMember(c *Client) {
	for i, m := range ch.members {
		if m == c {
			ch.members = append(ch.members[:i], ch.members[i+1:]...)
			return
		}
	}
}

func (ch *Channel) HasMember(c *Client) bool {
	for _, m := range ch.members {
		if m == c {
			return true
		}
	}
	return false
}

func (ch *Channel) Empty() bool {
	return len(ch.members) == 0
}

// Members returns a snapshot of the member list. Callers iterate the
// copy, so a handler may freely remove members (including the one
// currently being visited) while a broadcast over this snapshot is in
// progress.
func (ch *Channel) Members() []*Client {
	out := make([]*Client, len(ch.members))
	copy(out, ch.members)
	return out
}

// Broadcast sends msg to every member, optionally skipping one.
func (ch *Channel) Broadcast(msg string, except *Client) {
	for _, m := range ch.Members() {
		if m == except {
			continue
		}
		m.Msg(msg)
	}
}
