// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// cacheCollector adapts a Cache's live observer methods to
// prometheus.Collector, sampling fresh values on every scrape rather than
// mirroring them into separately-updated gauges.
type cacheCollector struct {
	c *Cache

	count        *prometheus.Desc
	totalWeight  *prometheus.Desc
	capacity     *prometheus.Desc
	entryWidth   *prometheus.Desc
	levelCount   *prometheus.Desc
	levelWeight  *prometheus.Desc
	inserts      *prometheus.Desc
	evictions    *prometheus.Desc
	demotions    *prometheus.Desc
	promotions   *prometheus.Desc
	deletes      *prometheus.Desc
	safetyViols  *prometheus.Desc
}

// Collector returns a prometheus.Collector exposing this cache's size,
// per-level occupancy, and lifetime counters. Register it on whichever
// *prometheus.Registry the caller maintains.
func (c *Cache) Collector() prometheus.Collector {
	return &cacheCollector{
		c:           c,
		count:       prometheus.NewDesc("multilru_count", "Number of live entries.", nil, nil),
		totalWeight: prometheus.NewDesc("multilru_total_weight", "Sum of live entry weights.", nil, nil),
		capacity:    prometheus.NewDesc("multilru_capacity", "Number of addressable slot ids.", nil, nil),
		entryWidth:  prometheus.NewDesc("multilru_entry_width_bytes", "Current per-slot byte width.", nil, nil),
		levelCount:  prometheus.NewDesc("multilru_level_count", "Live entries per level.", []string{"level"}, nil),
		levelWeight: prometheus.NewDesc("multilru_level_weight", "Entry weight sum per level.", []string{"level"}, nil),
		inserts:     prometheus.NewDesc("multilru_inserts_total", "Lifetime insert count.", nil, nil),
		evictions:   prometheus.NewDesc("multilru_evictions_total", "Lifetime true-eviction count.", nil, nil),
		demotions:   prometheus.NewDesc("multilru_demotions_total", "Lifetime demotion count.", nil, nil),
		promotions:  prometheus.NewDesc("multilru_promotions_total", "Lifetime promotion count.", nil, nil),
		deletes:     prometheus.NewDesc("multilru_deletes_total", "Lifetime explicit delete count.", nil, nil),
		safetyViols: prometheus.NewDesc("multilru_safety_violations_total", "Operations on already-unpopulated slots.", nil, nil),
	}
}

func (m *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.count
	ch <- m.totalWeight
	ch <- m.capacity
	ch <- m.entryWidth
	ch <- m.levelCount
	ch <- m.levelWeight
	ch <- m.inserts
	ch <- m.evictions
	ch <- m.demotions
	ch <- m.promotions
	ch <- m.deletes
	ch <- m.safetyViols
}

func (m *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	c := m.c
	ch <- prometheus.MustNewConstMetric(m.count, prometheus.GaugeValue, float64(c.Count()))
	ch <- prometheus.MustNewConstMetric(m.totalWeight, prometheus.GaugeValue, float64(c.TotalWeight()))
	ch <- prometheus.MustNewConstMetric(m.capacity, prometheus.GaugeValue, float64(c.Capacity()))
	ch <- prometheus.MustNewConstMetric(m.entryWidth, prometheus.GaugeValue, float64(c.EntryWidth()))

	for l := 0; l < c.maxLevels; l++ {
		label := strconv.Itoa(l)
		ch <- prometheus.MustNewConstMetric(m.levelCount, prometheus.GaugeValue, float64(c.LevelCount(l)), label)
		ch <- prometheus.MustNewConstMetric(m.levelWeight, prometheus.GaugeValue, float64(c.LevelWeight(l)), label)
	}

	stats := c.GetStats()
	ch <- prometheus.MustNewConstMetric(m.inserts, prometheus.CounterValue, float64(stats.Inserts))
	ch <- prometheus.MustNewConstMetric(m.evictions, prometheus.CounterValue, float64(stats.Evictions))
	ch <- prometheus.MustNewConstMetric(m.demotions, prometheus.CounterValue, float64(stats.Demotions))
	ch <- prometheus.MustNewConstMetric(m.promotions, prometheus.CounterValue, float64(stats.Promotions))
	ch <- prometheus.MustNewConstMetric(m.deletes, prometheus.CounterValue, float64(stats.Deletes))
	ch <- prometheus.MustNewConstMetric(m.safetyViols, prometheus.CounterValue, float64(stats.SafetyViolations))
}
