package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List decodes a collection serialised with ASP.NET reference preservation,
// {"$id": "1", "$values": [...]}, and also the plain array the backend sends
// when preservation is off
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var preserved struct {
		Values *[]T `json:"$values"`
	}
	if err := json.Unmarshal(data, &preserved); err != nil {
		return err
	}
	if preserved.Values == nil {
		return fmt.Errorf("collection has neither an array nor $values")
	}
	*l = *preserved.Values
	return nil
}

// Page is the paged envelope returned by list endpoints
type Page[T any] struct {
	Items      List[T] `json:"items"`
	Page       int     `json:"page,omitempty"`
	PageSize   int     `json:"pageSize,omitempty"`
	TotalCount int     `json:"totalCount,omitempty"`
}

// taskCollection is what the task list endpoint sends: either a page
// envelope or the preserved collection itself
type taskCollection[T any] struct {
	items List[T]
}

func (c *taskCollection[T]) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		// bare array
		return c.items.UnmarshalJSON(data)
	}
	if raw, ok := probe["items"]; ok {
		return c.items.UnmarshalJSON(raw)
	}
	return c.items.UnmarshalJSON(data)
}
