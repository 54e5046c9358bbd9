// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ClusterCockpit/tiercore/pkg/dlog"
)

//go:embed schemas/*
var schemaFiles embed.FS

func loadSchemaFile(s string) (io.ReadCloser, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	// "embedFS://schemas/x.json" parses as host "schemas", path "/x.json".
	return schemaFiles.Open(u.Host + u.Path)
}

func init() {
	// url.Parse lowercases the scheme, so the loader key must be lowercase.
	jsonschema.Loaders["embedfs"] = loadSchemaFile
}

// Config is the JSON-decodable shape LoadConfig validates before
// constructing a Cache with New.
type Config struct {
	MaxLevels     int    `json:"maxLevels"`
	StartCapacity uint64 `json:"startCapacity"`
	Policy        string `json:"policy"`
	MaxCount      uint64 `json:"maxCount"`
	MaxWeight     uint64 `json:"maxWeight"`
	Weights       bool   `json:"weights"`
	AutoEvict     bool   `json:"autoEvict"`
	CustomPolicy  string `json:"customPolicy"`
}

// LoadConfig decodes and validates a cache configuration document against
// the embedded JSON Schema before returning it, the same validate-before-
// trust sequence used for every other JSON configuration document in this
// codebase's lineage: decode to a generic value, validate that value, only
// then decode into the typed struct.
func LoadConfig(r io.Reader) (Config, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("multilru: reading config: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Config{}, fmt.Errorf("multilru: decoding config: %w", err)
	}

	s, err := jsonschema.Compile("embedFS://schemas/config.schema.json")
	if err != nil {
		return Config{}, fmt.Errorf("multilru: compiling config schema: %w", err)
	}
	if err := s.Validate(raw); err != nil {
		dlog.Warnf("multilru: config failed schema validation: %v", err)
		return Config{}, fmt.Errorf("multilru: invalid config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		return Config{}, fmt.Errorf("multilru: decoding validated config: %w", err)
	}
	return cfg, nil
}

// toPolicy parses Config.Policy into a Policy value.
func (cfg Config) toPolicy() (Policy, error) {
	switch cfg.Policy {
	case "count":
		return CountPolicy, nil
	case "size":
		return SizePolicy, nil
	case "hybrid":
		return HybridPolicy, nil
	case "custom":
		return CustomPolicy, nil
	default:
		return 0, fmt.Errorf("multilru: unknown policy %q", cfg.Policy)
	}
}

// NewFromConfig constructs a Cache from a validated Config.
func NewFromConfig(cfg Config) (*Cache, error) {
	policy, err := cfg.toPolicy()
	if err != nil {
		return nil, err
	}

	var opts []Option
	if cfg.Weights {
		opts = append(opts, WithWeights())
	}
	if cfg.MaxCount > 0 {
		opts = append(opts, WithMaxCount(cfg.MaxCount))
	}
	if cfg.MaxWeight > 0 {
		opts = append(opts, WithMaxWeight(cfg.MaxWeight))
	}
	opts = append(opts, WithAutoEvict(cfg.AutoEvict))
	if policy == CustomPolicy && cfg.CustomPolicy != "" {
		opts = append(opts, WithCustomPolicy(cfg.CustomPolicy))
	}

	return New(cfg.MaxLevels, cfg.StartCapacity, policy, opts...), nil
}
