package main

import (
	"flag"
	"fmt"
	"net"

	"github.com/KiaFarhang/atomiccounter/internal/log"
	"github.com/KiaFarhang/atomiccounter/lib/atomiccounter"
)

var (
	addr = flag.String("addr", "localhost:5001", "TCP address to listen on")
	name = flag.String("name", "upstream", "Name included in every response")

	served atomiccounter.Counter
)

func main() {
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("Error listening for TCP connections: %s", err)
	}

	defer listener.Close()

	log.Infof("Listening for TCP connections on %s...", *addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Errorf("Error accepting TCP connection: %s", err)
			continue
		}

		go handleRequest(conn)
	}
}

func handleRequest(conn net.Conn) {
	n := served.Increment()
	log.Infof("Handling request #%d from %s", n, conn.RemoteAddr())
	fmt.Fprintf(conn, "Hi there from %s (#%d)", *name, n)
	conn.Close()
	log.Infof("Done handling request from %s", conn.RemoteAddr())
}
