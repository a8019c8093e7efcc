package ntcp

import (
	"net"
	"testing"
	"fmt"
)

func TestDebugHandshake(t *testing.T) {
	client, err := newFixtureRouter()
	if err != nil { t.Fatal(err) }
	server, err := newFixtureRouter()
	if err != nil { t.Fatal(err) }

	clientConn, serverConn := net.Pipe()

	type result struct {
		hr  *handshakeResult
		err error
	}
	clientCh := make(chan result, 1)
	serverCh := make(chan result, 1)

	go func() {
		hr, err := RunClient(clientConn, client, server.RouterIdentity(), 0)
		clientCh <- result{hr, err}
	}()
	go func() {
		hr, err := RunServer(serverConn, server, resolverFor(client.RouterIdentity()), 0)
		serverCh <- result{hr, err}
	}()

	sr := <-serverCh
	fmt.Println("SERVER ERR:", sr.err)
	cr := <-clientCh
	fmt.Println("CLIENT ERR:", cr.err)
}
