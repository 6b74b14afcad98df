package notify

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteSSE renders ev as one server-sent-event frame.
func WriteSSE(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", ev.ID, ev.Name, data)
	return err
}

// WriteComment emits an SSE comment line, used as a keep-alive.
func WriteComment(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, ": %s\n\n", text)
	return err
}
