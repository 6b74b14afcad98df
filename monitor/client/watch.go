package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/pkg/errors"
)

const maxEventSize = 16 << 20

// Event is one processes:update notification received from the server.
type Event struct {
	ID      uint64
	Name    string
	Payload domain.ChangeSet
}

// Watch subscribes to the event stream and calls fn for every change set
// until ctx is cancelled, the server closes the stream or fn returns an error.
// A non-nil error from fn is returned as is.
func (c *Client) Watch(ctx context.Context, fn func(Event) error) error {
	req, err := c.newRequest(ctx, http.MethodGet, apiPrefix+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "open event stream")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var env envelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil {
			return decodeError(resp.StatusCode, env)
		}
		return errors.Errorf("open event stream: %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64<<10), maxEventSize)

	var (
		ev   Event
		data strings.Builder
	)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if data.Len() > 0 && ev.Name == domain.EventProcessesUpdate {
				if err := json.Unmarshal([]byte(data.String()), &ev.Payload); err != nil {
					return errors.Wrapf(err, "decode event %d", ev.ID)
				}
				if err := fn(ev); err != nil {
					return err
				}
			}
			ev = Event{}
			data.Reset()
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			ev.ID, _ = strconv.ParseUint(value, 10, 64)
		case "event":
			ev.Name = value
		case "data":
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(value)
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Wrap(scanner.Err(), "read event stream")
}
