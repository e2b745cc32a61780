// Command invoke sends an event to a report handler that is running locally
// with the _LAMBDA_SERVER_PORT environment variable set, using the Lambda
// RPC protocol. Handy for exercising a full run without deploying:
//
//	_LAMBDA_SERVER_PORT=8001 go run . &
//	go run ./invoke -event event.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blmayer/awslambdarpc/client"
)

func main() {
	addr := flag.String("addr", "localhost:8001", "address of the running handler")
	eventFile := flag.String("event", "", "path to a JSON event file (empty event if unset)")
	flag.Parse()

	payload := []byte("{}")
	if *eventFile != "" {
		data, err := os.ReadFile(*eventFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading event file: %v\n", err)
			os.Exit(1)
		}
		payload = data
	}

	res, err := client.Invoke(*addr, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error invoking handler: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(res))
}
