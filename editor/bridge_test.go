// Copyright © 2026 Vivid contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package editor

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"
)

func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestBridgeDeliversReloadRequest(t *testing.T) {
	reloaded := make(chan struct{}, 1)
	b, err := New("127.0.0.1:0", Handler{OnReload: func() { reloaded <- struct{}{} }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	go b.Serve()

	conn := dial(t, b.Addr())
	defer conn.Close()
	conn.Write([]byte(`{"type":"reload"}` + "\n"))

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnReload")
	}
}

func TestBridgeDeliversSetParamRequest(t *testing.T) {
	got := make(chan SetParamRequest, 1)
	b, err := New("127.0.0.1:0", Handler{OnSetParam: func(req SetParamRequest) { got <- req }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	go b.Serve()

	conn := dial(t, b.Addr())
	defer conn.Close()
	conn.Write([]byte(`{"type":"set_param","op":"osc1","name":"frequency","value":[880,0,0,0]}` + "\n"))

	select {
	case req := <-got:
		if req.Op != "osc1" || req.Name != "frequency" || req.Value[0] != 880 {
			t.Errorf("unexpected request: %+v", req)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnSetParam")
	}
}

func TestBridgeBroadcastCompileReachesClient(t *testing.T) {
	b, err := New("127.0.0.1:0", Handler{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	go b.Serve()

	conn := dial(t, b.Addr())
	defer conn.Close()

	// Give the server a moment to register the connection before
	// broadcasting, since accept happens on its own goroutine.
	time.Sleep(20 * time.Millisecond)
	if err := b.BroadcastCompile(false, "syntax error"); err != nil {
		t.Fatalf("BroadcastCompile: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	var msg compileMsg
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Type != "compile" || msg.OK || msg.Message != "syntax error" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestParsePortRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"9876", true},
		{"0", false},
		{"-1", false},
		{"70000", false},
		{"not-a-number", false},
	}
	for _, c := range cases {
		_, ok := ParsePort(c.in)
		if ok != c.ok {
			t.Errorf("ParsePort(%q): got ok=%v, want %v", c.in, ok, c.ok)
		}
	}
}
