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
	"strconv"
	"strings"
)

// handleNick implements NICK <newnick>.
func handleNick(reg *Registry, c *Client, msg Message) {
	newnick := msg.FirstParam()
	if newnick == "" {
		c.ReplyParts(errNoNicknameGiven, "No nickname given")
		return
	}
	if !NicknameValid(newnick) {
		c.ReplyParts(errErroneousNickname, TruncateIdentifier(newnick, maxNickLength), "Erroneous nickname")
		return
	}
	for _, other := range reg.Clients() {
		if other == c {
			continue
		}
		if other.nickname != "" && NicksEqual(other.nickname, newnick) {
			c.ReplyNicknamed(errNicknameInUse, newnick, "Nickname is already in use")
			return
		}
	}

	old := c.nickname
	c.nickname = newnick

	if c.channel != nil {
		echo := fmt.Sprintf(":%s!%s@%s NICK %s", old, c.username, c.host, newnick)
		c.channel.Broadcast(echo, c)
	}

	if !c.registered && c.nickname != "" && c.username != "" {
		reg.register(c)
	}
}

// handleUser implements USER <user> <mode> <servername> :<realname>.
func handleUser(reg *Registry, c *Client, msg Message) {
	if c.registered {
		c.ReplyNicknamed(errAlreadyRegistered, "You may not reregister")
	}

	realname := msg.Trailing
	if !msg.HasTrailing {
		realname = msg.Params[3]
	}
	c.username = TruncateIdentifier(msg.Params[0], maxUserLength)
	c.realname = TruncateIdentifier(realname, maxRealLength)

	if !c.registered && c.nickname != "" {
		reg.register(c)
	}
}

// handleQuit implements QUIT [<msg>].
func handleQuit(reg *Registry, c *Client, msg Message) {
	reason := "Client Quit"
	if msg.HasTrailing && msg.Trailing != "" {
		reason = msg.Trailing
	} else if len(msg.Params) > 0 {
		reason = msg.Params[0]
	}
	reg.markZombie(c, reason)
}

// handleJoin implements JOIN <channel>.
func handleJoin(reg *Registry, c *Client, msg Message) {
	raw := msg.FirstParam()
	name := raw
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		name = raw[:idx]
	}

	if !ChannelNameValid(name) {
		c.ReplyNicknamed(errNoSuchChannel, TruncateIdentifier(name, maxChanLength), "No such channel")
		return
	}

	if c.channel != nil {
		if c.channel.name == name {
			return
		}
		// Deliberate departure from canonical IRC (spec §9 open
		// question): the implicit part of the old channel echoes as a
		// QUIT, not a PART.
		old := c.channel
		echo := fmt.Sprintf(":%s!%s@%s QUIT :%s", c.nickname, c.username, c.host, "Changing channel")
		old.Broadcast(echo, nil)
		reg.leaveChannel(old, c)
	}

	ch := reg.joinChannel(name, c)

	echo := fmt.Sprintf(":%s!%s@%s JOIN %s", c.nickname, c.username, c.host, name)
	ch.Broadcast(echo, nil)

	names := make([]string, 0, len(ch.members))
	for _, m := range ch.Members() {
		names = append(names, m.nickname)
	}
	c.ReplyNicknamed(rplNamReply, "=", name, strings.Join(names, " "))
	c.ReplyNicknamed(rplEndOfNames, name, "End of /NAMES list")
}

// handlePart implements PART <channel>.
func handlePart(reg *Registry, c *Client, msg Message) {
	raw := msg.FirstParam()
	name := raw
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		name = raw[:idx]
	}

	ch, ok := reg.findChannel(name)
	if !ok {
		c.ReplyNicknamed(errNoSuchChannel, TruncateIdentifier(name, maxChanLength), "No such channel")
		return
	}
	if c.channel != ch || !ch.HasMember(c) {
		c.ReplyNicknamed(errNotOnChannel, name, "You're not on that channel")
		return
	}

	echo := fmt.Sprintf(":%s!%s@%s PART %s", c.nickname, c.username, c.host, name)
	ch.Broadcast(echo, nil)
	reg.leaveChannel(ch, c)
}

// handleList implements LIST.
func handleList(reg *Registry, c *Client, msg Message) {
	c.ReplyNicknamed(rplListStart, "Channel", "Users  Name")
	for _, name := range reg.sortedChannelNames() {
		ch, _ := reg.findChannel(name)
		c.ReplyNicknamed(rplList, name, strconv.Itoa(len(ch.members)))
	}
	c.ReplyNicknamed(rplListEnd, "End of /LIST")
}

// handlePrivmsg implements PRIVMSG <targets> <text>.
func handlePrivmsg(reg *Registry, c *Client, msg Message) {
	n := msg.NParams()
	if n == 0 {
		c.ReplyNicknamed(errNoRecipient, "No recipient given (PRIVMSG)")
		return
	}
	if n == 1 {
		c.ReplyNicknamed(errNoTextToSend, "No text to send")
		return
	}

	targets := msg.Params[0]
	text := msg.Trailing
	if !msg.HasTrailing && len(msg.Params) > 1 {
		text = msg.Params[1]
	}

	for _, target := range strings.Split(targets, ",") {
		if target == c.nickname {
			continue
		}

		delivered := false
		for _, other := range reg.Clients() {
			if other.nickname == target {
				other.Msg(fmt.Sprintf(":%s PRIVMSG %s :%s", c.nickname, target, text))
				delivered = true
				break
			}
		}
		if delivered {
			continue
		}

		if ch, ok := reg.findChannel(target); ok {
			ch.Broadcast(fmt.Sprintf(":%s PRIVMSG %s :%s", c.nickname, target, text), c)
			continue
		}

		c.ReplyNicknamed(errNoSuchNick, TruncateIdentifier(target, maxNickLength), "No such nick/channel")
	}
}

// handleWho implements WHO [<mask>].
func handleWho(reg *Registry, c *Client, msg Message) {
	mask := msg.FirstParam()

	if mask == "" {
		for _, other := range reg.Clients() {
			if other == c {
				continue
			}
			if !whoVisible(c, other) {
				continue
			}
			c.ReplyNicknamed(rplWhoReply, "*", other.username, other.host, reg.hostname, other.nickname, "H", "0 "+other.realname)
		}
		c.ReplyNicknamed(rplEndOfWho, "*", "End of /WHO list")
		return
	}

	for _, item := range strings.Split(mask, ",") {
		if ch, ok := reg.findChannel(item); ok {
			for _, m := range ch.Members() {
				c.ReplyNicknamed(rplWhoReply, item, m.username, m.host, reg.hostname, m.nickname, "H", "0 "+m.realname)
			}
		}
		c.ReplyNicknamed(rplEndOfWho, item, "End of /WHO list")
	}
}

// whoVisible implements the no-mask WHO visibility rule (spec §4.6):
// a client is visible if it is in no channel, the requester is in no
// channel, or the two are in different channels.
func whoVisible(requester, other *Client) bool {
	if requester.channel == nil || other.channel == nil {
		return true
	}
	return requester.channel != other.channel
}
