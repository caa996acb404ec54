package main

import (
	"net"
	"strings"
	"testing"
	"time"
)

// TestingConn is a net.Conn fake that can be fed predefined reads and
// records every write, adapted from the teacher's own test harness.
type TestingConn struct {
	inbound  chan string
	outbound chan string
	closed   bool
}

func NewTestingConn() *TestingConn {
	return &TestingConn{
		inbound:  make(chan string, 8),
		outbound: make(chan string, 8),
	}
}

func (c *TestingConn) Error() string { return "testing connection finished" }

func (c *TestingConn) Read(b []byte) (int, error) {
	msg := <-c.inbound
	if msg == "" {
		return 0, c
	}
	n := copy(b, []byte(msg+crlf))
	return n, nil
}

func (c *TestingConn) Write(b []byte) (int, error) {
	if c.closed {
		return 0, c
	}
	c.outbound <- string(b)
	return len(b), nil
}

func (c *TestingConn) Close() error              { c.closed = true; return nil }
func (c *TestingConn) LocalAddr() net.Addr       { return testAddr{} }
func (c *TestingConn) RemoteAddr() net.Addr      { return testAddr{} }
func (c *TestingConn) SetDeadline(time.Time) error      { return nil }
func (c *TestingConn) SetReadDeadline(time.Time) error  { return nil }
func (c *TestingConn) SetWriteDeadline(time.Time) error { return nil }

type testAddr struct{}

func (testAddr) String() string  { return "someclient" }
func (testAddr) Network() string { return "somenet" }

func TestClientProcessorEmitsEvents(t *testing.T) {
	conn := NewTestingConn()
	reg := NewRegistry("foohost", DebugNone)
	client := NewClient(reg, "foohost", conn)
	sink := make(chan ClientEvent)
	go client.Processor(sink)

	if event := <-sink; event.kind != eventConnect {
		t.Fatalf("expected eventConnect, got %#v", event)
	}

	conn.inbound <- "NICK alice"
	event := <-sink
	if event.kind != eventMessage || event.msg.Command != "NICK" {
		t.Fatalf("expected NICK message, got %#v", event)
	}

	conn.inbound <- ""
	event = <-sink
	if event.kind != eventDisconnect {
		t.Fatalf("expected eventDisconnect, got %#v", event)
	}
}

func TestClientReplyFormatting(t *testing.T) {
	conn := NewTestingConn()
	reg := NewRegistry("foohost", DebugNone)
	client := NewClient(reg, "foohost", conn)
	client.nickname = "alice"

	client.Reply("hello")
	if r := <-conn.outbound; r != ":foohost hello\r\n" {
		t.Fatalf("Reply = %q", r)
	}

	client.ReplyParts("200", "foo", "bar")
	if r := <-conn.outbound; r != ":foohost 200 foo :bar\r\n" {
		t.Fatalf("ReplyParts = %q", r)
	}

	client.ReplyNicknamed("200", "foo", "bar")
	if r := <-conn.outbound; r != ":foohost 200 alice foo :bar\r\n" {
		t.Fatalf("ReplyNicknamed = %q", r)
	}

	client.nickname = ""
	client.ReplyNicknamed("451", "You have not registered")
	if r := <-conn.outbound; r != ":foohost 451 * :You have not registered\r\n" {
		t.Fatalf("ReplyNicknamed with no nick = %q", r)
	}
}

func TestClientWriteFailureMarksZombie(t *testing.T) {
	conn := NewTestingConn()
	reg := NewRegistry("foohost", DebugNone)
	client := NewClient(reg, "foohost", conn)
	conn.closed = true

	client.Msg("whatever")
	if !client.zombie {
		t.Fatal("expected client to be marked zombie after write failure")
	}
	if len(reg.zombies) != 1 || reg.zombies[0] != client {
		t.Fatalf("expected client queued for reap, got %#v", reg.zombies)
	}
}

func TestNewClientTruncatesOversizeHost(t *testing.T) {
	reg := NewRegistry("foohost", DebugNone)
	long := strings.Repeat("x", maxHostLength+20)
	client := NewClient(reg, long, NewTestingConn())
	if len(client.host) != maxHostLength {
		t.Fatalf("host len = %d, want %d", len(client.host), maxHostLength)
	}
	if client.host != long[:maxHostLength] {
		t.Fatalf("host = %q, want truncated prefix", client.host)
	}
}
