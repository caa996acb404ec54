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
	"fmt"
	"log"
	"sort"
)

// maxClients bounds simultaneous connections (spec §6).
const maxClients = 512

// Registry is the server's only process-wide state: every client and
// channel, plus the set of clients pending reap. It is the single
// owner of both collections, which is what lets it keep a client's
// channel back-pointer and a channel's member set mutated atomically
// together (spec invariants 2 and 3).
type Registry struct {
	hostname  string
	debugMask DebugMask

	clients  map[*Client]struct{}
	channels map[string]*Channel
	zombies  []*Client
}

func NewRegistry(hostname string, mask DebugMask) *Registry {
	return &Registry{
		hostname:  hostname,
		debugMask: mask,
		clients:   make(map[*Client]struct{}),
		channels:  make(map[string]*Channel),
	}
}

func (reg *Registry) debugf(bit DebugMask, format string, args ...interface{}) {
	if reg.debugMask.has(bit) {
		log.Printf(format, args...)
	}
}

// Clients returns a snapshot of every connected client. Handlers never
// hold the live map across a mutation, so removal of any element
// (including one the caller is currently visiting) during iteration of
// the snapshot is always safe.
func (reg *Registry) Clients() []*Client {
	out := make([]*Client, 0, len(reg.clients))
	for c := range reg.clients {
		out = append(out, c)
	}
	return out
}

func (reg *Registry) findChannel(name string) (*Channel, bool) {
	ch, ok := reg.channels[name]
	return ch, ok
}

// joinChannel adds c to the named channel, creating it if it doesn't
// exist yet (spec §4.6 JOIN: "create the target channel if absent").
func (reg *Registry) joinChannel(name string, c *Client) *Channel {
	ch, ok := reg.channels[name]
	if !ok {
		ch = &Channel{name: name}
		reg.channels[name] = ch
		reg.debugf(DebugChannels, "%s created", name)
	}
	ch.AddMember(c)
	c.channel = ch
	return ch
}

// leaveChannel removes c from ch, deleting ch if it becomes empty
// (spec invariant 2: a channel's member set is never empty).
func (reg *Registry) leaveChannel(ch *Channel, c *Client) {
	ch.RemoveMember(c)
	if c.channel == ch {
		c.channel = nil
	}
	if ch.Empty() {
		delete(reg.channels, ch.name)
		reg.debugf(DebugChannels, "%s deleted", ch.name)
	}
}

func (reg *Registry) sortedChannelNames() []string {
	names := make([]string, 0, len(reg.channels))
	for name := range reg.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// register transitions a client from Unregistered to Registered (both
// nick and user are now set) and sends the MOTD.
func (reg *Registry) register(c *Client) {
	c.registered = true
	reg.sendMotd(c)
}

// markZombie flags c for removal at the end of the current dispatch.
// It is the only path into the Zombie state, whether the cause was an
// explicit QUIT, a connection error, or a failed write, so reapZombies
// has one uniform cleanup to perform regardless of cause.
func (reg *Registry) markZombie(c *Client, reason string) {
	if c.zombie {
		return
	}
	reg.debugf(DebugErrs, "%s marked zombie: %s", c, reason)
	c.zombie = true
	c.quitReason = reason
	reg.zombies = append(reg.zombies, c)
}

// reapZombies removes every pending-zombie client from the registry:
// it notifies remaining channel peers with a synthesized QUIT, drops
// channel membership (deleting the channel if it becomes empty),
// removes the client from the client set, and closes its socket. It
// runs once per top-level dispatch (spec §5), so a zombie's fields
// stay valid for the whole handler invocation that killed it.
func (reg *Registry) reapZombies() {
	if len(reg.zombies) == 0 {
		return
	}
	// Index-based, not range: reaping one zombie can broadcast a QUIT
	// echo whose write failure marks another client zombie, appending to
	// reg.zombies while this loop runs. A range would snapshot the slice
	// header up front and lose that append when the slice is truncated
	// below; re-reading len(reg.zombies) each iteration picks it up.
	for i := 0; i < len(reg.zombies); i++ {
		c := reg.zombies[i]
		if ch := c.channel; ch != nil {
			echo := fmt.Sprintf(":%s!%s@%s QUIT :%s", c.nickname, c.username, c.host, c.quitReason)
			ch.Broadcast(echo, c)
			reg.leaveChannel(ch, c)
		}
		delete(reg.clients, c)
		_ = c.conn.Close()
		reg.debugf(DebugClients, "%s reaped: %s", c, c.quitReason)
	}
	reg.zombies = reg.zombies[:0]
}

// Processor is the server's single mutator goroutine. It is the only
// code that ever touches reg.clients or reg.channels; every other
// goroutine communicates with it exclusively through events.
func (reg *Registry) Processor(events <-chan ClientEvent) {
	for event := range events {
		c := event.client
		switch event.kind {
		case eventConnect:
			if len(reg.clients) >= maxClients {
				reg.debugf(DebugClients, "rejecting %s: server full", c)
				_ = c.conn.Close()
				continue
			}
			reg.clients[c] = struct{}{}
			reg.debugf(DebugClients, "%s connected (id %s)", c, c.id)

		case eventMessage:
			if _, ok := reg.clients[c]; !ok {
				continue
			}
			reg.debugf(DebugInput, "%s", event)
			reg.dispatch(c, event.msg)
			reg.reapZombies()

		case eventDisconnect:
			if _, ok := reg.clients[c]; ok {
				reg.markZombie(c, "Connection closed")
				reg.reapZombies()
			}
		}
	}
}
