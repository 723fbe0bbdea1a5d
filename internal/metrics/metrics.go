// Package metrics renders query results in the Prometheus text exposition format,
// for use with the node_exporter textfile collector.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/iancoleman/strcase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "konnektor"

// record is one flattened result object.
type record map[string]any

// Write renders result, a value of one of the konnektor result shapes, for the
// query named key. For list results idField names the field that labels each
// record; it is ignored for single-object results.
func Write(w io.Writer, key, idField string, result any) error {
	records, isList, err := toRecords(result)
	if err != nil {
		return err
	}

	labelField := ""
	if isList {
		labelField = idField
	}

	reg := prometheus.NewRegistry()
	subsystem := strcase.ToSnake(key)

	if err := registerNumeric(reg, subsystem, key, labelField, records); err != nil {
		return err
	}
	if err := registerInfo(reg, subsystem, key, records); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// toRecords round-trips result through JSON so the metric names follow the
// JSON field names of the printed document.
func toRecords(result any) ([]record, bool, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode result: %w", err)
	}

	var list []record
	if err := json.Unmarshal(data, &list); err == nil {
		return list, true, nil
	}

	var single record
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, false, fmt.Errorf("unsupported result shape: %w", err)
	}
	return []record{single}, false, nil
}

// registerNumeric adds one gauge per numeric field.
func registerNumeric(reg *prometheus.Registry, subsystem, key, labelField string, records []record) error {
	var labels []string
	if labelField != "" {
		labels = []string{strcase.ToSnake(labelField)}
	}

	gauges := make(map[string]*prometheus.GaugeVec)
	for _, rec := range records {
		for _, field := range sortedFields(rec) {
			v, ok := rec[field].(float64)
			if !ok {
				continue
			}

			g, exists := gauges[field]
			if !exists {
				g = prometheus.NewGaugeVec(prometheus.GaugeOpts{
					Namespace: namespace,
					Subsystem: subsystem,
					Name:      strcase.ToSnake(field),
					Help:      fmt.Sprintf("Value of %s reported by the %s query.", field, key),
				}, labels)
				if err := reg.Register(g); err != nil {
					return fmt.Errorf("failed to register %s: %w", field, err)
				}
				gauges[field] = g
			}

			var lv []string
			if labelField != "" {
				lv = []string{fmt.Sprint(rec[labelField])}
			}
			g.WithLabelValues(lv...).Set(v)
		}
	}
	return nil
}

// registerInfo adds an info gauge carrying the string fields as labels.
func registerInfo(reg *prometheus.Registry, subsystem, key string, records []record) error {
	if len(records) == 0 {
		return nil
	}

	var fields []string
	for _, field := range sortedFields(records[0]) {
		if _, ok := records[0][field].(string); ok {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}

	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = strcase.ToSnake(f)
	}

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "info",
		Help:      fmt.Sprintf("Text fields reported by the %s query.", key),
	}, labels)
	if err := reg.Register(info); err != nil {
		return fmt.Errorf("failed to register info: %w", err)
	}

	for _, rec := range records {
		lv := make([]string, len(fields))
		for i, f := range fields {
			if s, ok := rec[f].(string); ok {
				lv[i] = s
			}
		}
		info.WithLabelValues(lv...).Set(1)
	}
	return nil
}

func sortedFields(rec record) []string {
	fields := make([]string, 0, len(rec))
	for f := range rec {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
