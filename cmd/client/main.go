package main

import (
	"flag"
	"io"
	"net"
	"sync"

	"github.com/KiaFarhang/atomiccounter/internal/log"
	"github.com/KiaFarhang/atomiccounter/lib/atomiccounter"
)

var (
	addr     = flag.String("addr", "localhost:4000", "TCP address to send requests to")
	requests = flag.Int("n", 1, "Number of concurrent requests")
)

func main() {
	flag.Parse()

	address, err := net.ResolveTCPAddr("tcp", *addr)
	if err != nil {
		log.Fatalf("Error resolving TCP address: %s", err)
	}

	var (
		succeeded atomiccounter.Counter
		failed    atomiccounter.Counter
		waitGroup sync.WaitGroup
	)

	for i := 0; i < *requests; i++ {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()
			if err := request(address); err != nil {
				failed.Increment()
				log.Errorf("Request failed: %s", err)
				return
			}
			succeeded.Increment()
		}()
	}

	waitGroup.Wait()

	log.Infof("%s requests succeeded, %s failed", &succeeded, &failed)
}

func request(address *net.TCPAddr) error {
	connection, err := net.DialTCP("tcp", nil, address)
	if err != nil {
		return err
	}

	defer connection.Close()

	responseBytes, err := io.ReadAll(connection)
	if err != nil {
		return err
	}

	log.Infof("Response from server: %s", string(responseBytes))
	return nil
}
