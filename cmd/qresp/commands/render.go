package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/qresp/journal"
	"github.com/teranos/qresp/query"
	"github.com/teranos/qresp/query/reply"
)

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// renderOrdered prints drained responses in order, most relevant first.
func renderOrdered(w io.Writer, ordered []*query.Response) error {
	data := pterm.TableData{{"#", "Kind", "Rank", "Span", "Len", "Summary"}}
	for i, r := range ordered {
		data = append(data, []string{
			strconv.Itoa(i),
			r.Kind().String(),
			strconv.Itoa(query.Rank(r.Kind())),
			r.Span.String(),
			strconv.FormatUint(uint64(r.Span.Len()), 10),
			reply.HoverText(r),
		})
	}
	return renderTable(w, data)
}

func renderSessions(w io.Writer, sessions []journal.Session) error {
	data := pterm.TableData{{"ID", "File", "Request", "Responses", "Created"}}
	for _, s := range sessions {
		req := string(s.Request.Kind)
		if req == "" {
			req = "-"
		} else {
			req = fmt.Sprintf("%s@%d", req, s.Request.Offset)
		}
		data = append(data, []string{
			s.ID,
			string(s.File),
			req,
			strconv.Itoa(s.ResponseCount),
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(w, data)
}

func renderEntries(w io.Writer, entries []journal.Entry) error {
	data := pterm.TableData{{"#", "Kind", "Rank", "Span", "Summary"}}
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Position),
			e.Kind.String(),
			strconv.Itoa(e.Rank),
			e.Span.String(),
			e.Summary,
		})
	}
	return renderTable(w, data)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
