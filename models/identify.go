// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math/big"

// Identify is the gateway handshake payload sent by a client right after the
// connection is opened.
//
// Optional fields are pointers (or nil slices) so that "absent" and "zero"
// stay distinguishable after validation.
type Identify struct {
	Token              string             `json:"token"`
	Properties         IdentifyProperties `json:"properties"`
	Intents            *big.Int           `json:"intents"`
	Presence           *Presence          `json:"presence,omitempty"`
	Compress           *bool              `json:"compress,omitempty"`
	LargeThreshold     *float64           `json:"large_threshold,omitempty"`
	Shard              []float64          `json:"shard,omitempty"`
	GuildSubscriptions *bool              `json:"guild_subscriptions,omitempty"`
}

// IdentifyProperties describes the connecting client. The payload keys carry a
// literal "$" prefix.
type IdentifyProperties struct {
	OS      *string `json:"$os,omitempty"`
	Browser *string `json:"$browser,omitempty"`
	Device  *string `json:"$device,omitempty"`
}

// Presence is the initial presence of the identifying session.
type Presence struct {
	Status     *string    `json:"status,omitempty"`
	Since      *float64   `json:"since,omitempty"`
	AFK        *bool      `json:"afk,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// Activity is a single rich-presence activity.
type Activity struct {
	Name string  `json:"name"`
	Type float64 `json:"type"`
	URL  *string `json:"url,omitempty"`
}
