package mastodon

import (
	"bytes"
	"encoding/json"

	"mastodon-sync/core/utils"
)

// ID is a remote identifier. It decodes from a JSON string or number.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*id = ID(utils.ToString(raw))
	return nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}
