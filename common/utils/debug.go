package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var (
	debugOutput io.Writer = os.Stdout
	debugMutex  sync.Mutex
)

// SetDebugOutput redirects Debug messages; the CLI sends them to stderr so
// that stdout only carries results.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	debugOutput = w
	debugMutex.Unlock()
}

func Debug(service string, message string) {
	DebugWithContext(service, message, nil)
}

func DebugWithContext(service string, message string, ctx Context) {
	context := make(Context, len(ctx)+1)
	for k, v := range ctx {
		context[k] = v
	}

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	debugMutex.Lock()
	fmt.Fprintln(debugOutput, string(data))
	debugMutex.Unlock()
}
