package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	minTm, strategy, circular, mg := 58.0, "OVERLAPPING", true, 0.0

	type args struct {
		base Design
		o    Override
	}
	tests := []struct {
		name string
		args args
		want func(d *Design)
	}{
		{
			"empty override keeps defaults",
			args{Defaults(), Override{}},
			func(d *Design) {},
		},
		{
			"set fields replace defaults",
			args{Defaults(), Override{MinTm: &minTm, Strategy: &strategy, Circular: &circular}},
			func(d *Design) {
				d.MinTm = 58
				d.Strategy = Overlapping
				d.Circular = true
			},
		},
		{
			"conditions are overridden individually",
			args{Defaults(), Override{Mg: &mg}},
			func(d *Design) {
				d.Conditions.Mg = 0
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := Defaults()
			tt.want(&want)

			got := Merge(tt.args.base, tt.args.o)
			assert.Equal(t, want, got)
			assert.Equal(t, Defaults(), tt.args.base, "base was modified")
		})
	}
}

func TestDesign_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Design)
		wantErr bool
	}{
		{"defaults", func(d *Design) {}, false},
		{"inverted tm window", func(d *Design) { d.MinTm, d.MaxTm = 70, 60 }, true},
		{"inverted primer lengths", func(d *Design) { d.MinPrimerLength = 70 }, true},
		{"unknown strategy", func(d *Design) { d.Strategy = "gibson" }, true},
		{"unknown organism", func(d *Design) { d.Organism = "yeast" }, true},
		{"no salt", func(d *Design) { d.Conditions.Na, d.Conditions.Mg = 0, 0 }, true},
		{"sodium only", func(d *Design) { d.Conditions.Mg = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Defaults()
			tt.mutate(&d)
			if err := d.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Design.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("min-tm: 57\nmax-primer-length: 50\norganism: human\n"), 0644))
	t.Setenv("SDM_MAX_TM", "68.5")
	t.Setenv("SDM_GC_CLAMP", "true")

	v := viper.New()
	require.NoError(t, Setup(v, settings))
	v.Set("max-primer-length", 45) // as if from a flag

	got, err := Load(v)
	require.NoError(t, err)

	want := Defaults()
	want.MinTm = 57
	want.MaxTm = 68.5
	want.MaxPrimerLength = 45
	want.Organism = "human"
	want.GCClampRequired = true
	assert.Equal(t, want, got)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("min-tm", 80)

	_, err := Load(v)
	assert.Error(t, err)
}
