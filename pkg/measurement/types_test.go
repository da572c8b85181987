package measurement

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		name string
		mt   Type
		want string
	}{
		{"CPUFreq", TypeCPUFreq, "CPUFreq"},
		{"Hwmon", TypeHwmon, "Hwmon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mt.String(); got != tt.want {
				t.Errorf("Type.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Type
		wantOk bool
	}{
		{"valid hwmon", "Hwmon", TypeHwmon, true},
		{"valid cpufreq", "CPUFreq", TypeCPUFreq, true},
		{"invalid", "Invalid", "", false},
		{"empty", "", "", false},
		{"lowercase", "hwmon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotOk := ParseType(tt.input)
			if got != tt.want || gotOk != tt.wantOk {
				t.Errorf("ParseType(%q) = (%v, %v), want (%v, %v)", tt.input, got, gotOk, tt.want, tt.wantOk)
			}
		})
	}
}

func TestToReading(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"float64", 45.5, 45.5},
		{"uint64", uint64(7), uint64(7)},
		{"bool", true, true},
		{"string", "°C", "°C"},
		{"int", 3, 3},
		{"unsupported", []int{1}, "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToReading(tt.input).Any(); got != tt.want {
				t.Errorf("ToReading(%v) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSubtype_Getters(t *testing.T) {
	st := Subtype{
		Name: "nct6775/fan1",
		Data: map[string]Reading{
			KeyCurrent: Float64(1200),
			KeyUnit:    Str("RPM"),
			KeyFaulted: Bool(true),
			KeySamples: Uint64(3),
		},
	}

	if _, err := st.GetString(KeyCurrent); err == nil {
		t.Error("expected type error reading float as string")
	}
	if _, err := st.GetFloat64("missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := st.GetBool(KeyUnit); err == nil {
		t.Error("expected type error reading string as bool")
	}
	if v, err := st.GetBool(KeyFaulted); err != nil || !v {
		t.Errorf("GetBool() = %v, %v", v, err)
	}
	if v, err := st.GetString(KeyUnit); err != nil || v != "RPM" {
		t.Errorf("GetString() = %v, %v", v, err)
	}
}

func TestSubtype_GetFloat64(t *testing.T) {
	tests := []struct {
		name    string
		value   Reading
		want    float64
		wantErr bool
	}{
		{"float", Float64(41.5), 41.5, false},
		{"yaml int", Int(45), 45, false},
		{"int64", Int64(-5), -5, false},
		{"uint64", Uint64(1100), 1100, false},
		{"uint", Uint(7), 7, false},
		{"string", Str("45"), 0, true},
		{"bool", Bool(true), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Subtype{Data: map[string]Reading{KeyCurrent: tt.value}}
			got, err := st.GetFloat64(KeyCurrent)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetFloat64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetFloat64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtype_GetUint64(t *testing.T) {
	tests := []struct {
		name    string
		value   Reading
		want    uint64
		wantErr bool
	}{
		{"uint64", Uint64(3), 3, false},
		{"uint", Uint(4), 4, false},
		{"yaml int", Int(5), 5, false},
		{"int64", Int64(6), 6, false},
		{"json number", Float64(12), 12, false},
		{"negative", Int(-1), 0, true},
		{"fraction", Float64(1.5), 0, true},
		{"negative float", Float64(-2), 0, true},
		{"string", Str("3"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Subtype{Data: map[string]Reading{KeySamples: tt.value}}
			got, err := st.GetUint64(KeySamples)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetUint64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetUint64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	current := map[string]Reading{KeyCurrent: Float64(41)}
	tests := []struct {
		name    string
		m       Measurement
		wantErr bool
	}{
		{"valid", Measurement{Type: TypeHwmon, Subtypes: []Subtype{{Name: "coretemp/Core 0", Data: current}}}, false},
		{"empty type", Measurement{Subtypes: []Subtype{{Name: "a/b", Data: current}}}, true},
		{"unknown type", Measurement{Type: "GPU", Subtypes: []Subtype{{Name: "a/b", Data: current}}}, true},
		{"no subtypes", Measurement{Type: TypeHwmon}, true},
		{"unnamed subtype", Measurement{Type: TypeHwmon, Subtypes: []Subtype{{Data: current}}}, true},
		{"empty data", Measurement{Type: TypeHwmon, Subtypes: []Subtype{{Name: "a/b"}}}, true},
		{"no current", Measurement{Type: TypeHwmon, Subtypes: []Subtype{{Name: "a/b", Data: map[string]Reading{KeyUnit: Str("°C")}}}}, true},
		{"text current", Measurement{Type: TypeHwmon, Subtypes: []Subtype{{Name: "a/b", Data: map[string]Reading{KeyCurrent: Str("hot")}}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMeasurement_JSON(t *testing.T) {
	m := NewMeasurement(TypeHwmon).
		WithSubtypeBuilder(NewSubtypeBuilder("coretemp/Core 0").
			SetFloat64(KeyCurrent, 41.5).
			SetString(KeyUnit, "°C").
			WithContext(ContextGroup, "coretemp")).
		Build()

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"Hwmon","subtypes":[{"subtype":"coretemp/Core 0","data":{"current":41.5,"unit":"°C"},"context":{"group":"coretemp"}}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Measurement
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v, err := back.Subtypes[0].GetFloat64(KeyCurrent); err != nil || v != 41.5 {
		t.Errorf("round trip current = %v, %v", v, err)
	}
	if back.Subtypes[0].Context[ContextGroup] != "coretemp" {
		t.Errorf("round trip context = %v", back.Subtypes[0].Context)
	}
}

func TestMeasurement_YAML(t *testing.T) {
	m := NewMeasurement(TypeCPUFreq).
		WithSubtypeBuilder(NewSubtypeBuilder("CPU/CPU 0").SetFloat64(KeyCurrent, 2400).SetString(KeyUnit, "MHz")).
		Build()

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Measurement
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Type != TypeCPUFreq {
		t.Errorf("Type = %v", back.Type)
	}
	if v, err := back.Subtypes[0].GetString(KeyUnit); err != nil || v != "MHz" {
		t.Errorf("round trip unit = %v, %v", v, err)
	}
	if v, err := back.Subtypes[0].GetFloat64(KeyCurrent); err != nil || v != 2400 {
		t.Errorf("round trip current = %v, %v", v, err)
	}
}
