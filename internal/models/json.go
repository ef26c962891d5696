// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// assetJSON is the wire and search representation of an Asset.
type assetJSON struct {
	ID        string          `json:"id"`
	Type      AssetType       `json:"type"`
	Status    AssetStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON encodes the asset with its type discriminator.
func (a Asset) MarshalJSON() ([]byte, error) {
	return EncodeAsset(a)
}

// EncodeAsset returns the JSON form of a with HTML left unescaped, so the
// output matches what users typed. json.Marshal escapes HTML again in the
// result of MarshalJSON; callers that need the literal text use this.
func EncodeAsset(a Asset) ([]byte, error) {
	if a.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidAsset)
	}
	data, err := MarshalData(a.Data)
	if err != nil {
		return nil, err
	}
	return marshalUnescaped(assetJSON{
		ID:        a.ID,
		Type:      a.Data.AssetType(),
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Data:      data,
	})
}

// UnmarshalJSON decodes an asset, choosing the payload type from the "type"
// field. Payload fields that do not belong to that type are rejected.
func (a *Asset) UnmarshalJSON(b []byte) error {
	var raw assetJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	data, err := DecodeData(raw.Type, raw.Data)
	if err != nil {
		return err
	}
	*a = Asset{
		ID:        raw.ID,
		Status:    raw.Status,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Data:      data,
	}
	return nil
}

// MarshalData encodes a payload without HTML escaping.
func MarshalData(d AssetData) ([]byte, error) {
	return marshalUnescaped(d)
}

// DecodeData decodes raw into a fresh payload of type t.
func DecodeData(t AssetType, raw []byte) (AssetData, error) {
	data, err := NewAssetData(t)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidAsset)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %s data: %v", ErrInvalidAsset, t, err)
	}
	return data, nil
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
