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
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: simple-irc-server [-h] [-D mask] <port>")
	fmt.Fprintln(os.Stderr, "  port must be an integer in 1024-65535")
	flag.PrintDefaults()
}

func Run(portArg, debugArg string) error {
	port, err := strconv.ParseUint(portArg, 10, 32)
	if err != nil || port < 1024 || port > 65535 {
		return errors.Errorf("invalid port %s, please provide integer in 1024-65535 range", portArg)
	}

	mask, err := ParseDebugMask(debugArg)
	if err != nil {
		return errors.Wrap(err, "invalid debug mask")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}
	defer listener.Close()
	log.Println("Listening on", listener.Addr(), "as", hostname)

	reg := NewRegistry(hostname, mask)
	reg.debugf(DebugInit, "listening on %s as %s", listener.Addr(), hostname)
	serve(reg, listener)
	return nil
}

// serve runs the accept loop against an already-bound listener and the
// single registry Processor goroutine that owns all server state. It
// returns when Accept fails, which is what closing the listener causes.
func serve(reg *Registry, listener net.Listener) {
	events := make(chan ClientEvent)
	go reg.Processor(events)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Println("accept error:", err)
			return
		}
		client := NewClient(reg, peerHostname(conn), conn)
		reg.debugf(DebugSockets, "accepted connection %s from %s", client.id, conn.RemoteAddr())
		go client.Processor(events)
	}
}

// peerHostname resolves the connecting peer's reverse DNS name,
// falling back to its bare address when lookup fails (hostname
// resolution is an external collaborator per spec §1).
func peerHostname(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	if names, err := net.LookupAddr(host); err == nil && len(names) > 0 {
		return strings.TrimSuffix(names[0], ".")
	}
	return host
}

func main() {
	debugArg := flag.String("D", "", "debug mask: comma-separated categories (errs,init,sockets,split,input,clients,channels,replies,all) or a numeric bitmask")
	help := flag.Bool("h", false, "show usage")
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if err := Run(flag.Arg(0), *debugArg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
