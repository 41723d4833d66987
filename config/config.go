package config

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/kardianos/osext"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the settings file when no path is given explicitly.
const EnvConfigPath = "SIGHTLINE_CONFIG"

// fileSettings mirrors types.Settings; nil fields keep their default.
type fileSettings struct {
	Cone struct {
		Width  *float64     `yaml:"width,omitempty" json:"width,omitempty"`
		Height *float64     `yaml:"height,omitempty" json:"height,omitempty"`
		Table  string       `yaml:"table,omitempty" json:"table,omitempty"`
		Angles [][2]float64 `yaml:"angles,omitempty" json:"angles,omitempty"`
	} `yaml:"cone" json:"cone"`

	Clip struct {
		Near *float64 `yaml:"near,omitempty" json:"near,omitempty"`
		Far  *float64 `yaml:"far,omitempty" json:"far,omitempty"`
	} `yaml:"clip" json:"clip"`

	Occlusion struct {
		Enabled   *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
		Elevation string `yaml:"elevation,omitempty" json:"elevation,omitempty"`
		Union     *bool  `yaml:"union,omitempty" json:"union,omitempty"`
	} `yaml:"occlusion" json:"occlusion"`

	Head struct {
		Width  *float64 `yaml:"width,omitempty" json:"width,omitempty"`
		Height *float64 `yaml:"height,omitempty" json:"height,omitempty"`
	} `yaml:"head" json:"head"`

	Focal struct {
		Strategy string      `yaml:"strategy,omitempty" json:"strategy,omitempty"`
		Point    *[3]float64 `yaml:"point,omitempty" json:"point,omitempty"`
	} `yaml:"focal" json:"focal"`

	Parallel     *bool    `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Workers      *int     `yaml:"workers,omitempty" json:"workers,omitempty"`
	DefaultScore *float64 `yaml:"default_score,omitempty" json:"default_score,omitempty"`
}

type coneTable struct {
	Angles [][2]float64 `yaml:"angles" json:"angles"`
}

// ResolvePath returns the settings file to use: the given path, or the one
// named by SIGHTLINE_CONFIG. An empty result means defaults.
func ResolvePath(filename string) string {
	if filename != "" {
		return filename
	}

	return os.Getenv(EnvConfigPath)
}

// LoadSettings reads a YAML or JSON settings file on top of the defaults.
// An empty filename yields the defaults.
func LoadSettings(filename string) (types.Settings, error) {
	settings := types.DefaultSettings()
	if filename == "" {
		return settings, nil
	}

	var file fileSettings
	if err := decodeFile(filename, &file); err != nil {
		return settings, errors.Wrap(err, "could not load settings")
	}

	if err := apply(&settings, file, path.Dir(filename)); err != nil {
		return settings, errors.Wrapf(err, "invalid settings in %s", filename)
	}

	if err := settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "invalid settings in %s", filename)
	}

	return settings, nil
}

// SaveSettings writes settings in the format given by the file extension.
func SaveSettings(filename string, settings types.Settings) error {
	file := fromSettings(settings)

	var data []byte
	var err error

	if isJSON(filename) {
		data, err = json.MarshalIndent(file, "", "  ")
	} else {
		data, err = yaml.Marshal(file)
	}

	if err != nil {
		return errors.Wrap(err, "could not encode settings")
	}

	return errors.Wrapf(ioutil.WriteFile(filename, data, 0644), "could not write %s", filename)
}

func apply(settings *types.Settings, file fileSettings, basedir string) error {
	setFloat(&settings.ConeWidth, file.Cone.Width)
	setFloat(&settings.ConeHeight, file.Cone.Height)
	setFloat(&settings.NearClipDistance, file.Clip.Near)
	setFloat(&settings.FarClipDistance, file.Clip.Far)
	setFloat(&settings.HeadWidth, file.Head.Width)
	setFloat(&settings.HeadHeight, file.Head.Height)
	setFloat(&settings.DefaultScore, file.DefaultScore)
	setBool(&settings.OcclusionEnabled, file.Occlusion.Enabled)
	setBool(&settings.UnionOccluders, file.Occlusion.Union)
	setBool(&settings.Parallel, file.Parallel)

	if file.Workers != nil {
		settings.Workers = *file.Workers
	}

	if file.Occlusion.Elevation != "" {
		elevation, err := types.ParseOccluderElevation(file.Occlusion.Elevation)
		if err != nil {
			return err
		}
		settings.OccluderElevation = elevation
	}

	if file.Focal.Strategy != "" {
		strategy, err := types.ParseFocalPointStrategy(file.Focal.Strategy)
		if err != nil {
			return err
		}
		settings.FocalPointStrategy = strategy
	}

	if file.Focal.Point != nil {
		settings.FocalPoint = vector.MakeVector3(file.Focal.Point[0], file.Focal.Point[1], file.Focal.Point[2])
	}

	angles := file.Cone.Angles
	if file.Cone.Table != "" {
		if len(angles) > 0 {
			return errors.New("cone.table and cone.angles are mutually exclusive")
		}

		table, err := LoadConeTable(resolveRelative(file.Cone.Table, basedir))
		if err != nil {
			return err
		}
		angles = table
	}

	if len(angles) > 0 {
		cone, err := types.ViewConeFromAngles(toVectors(angles), settings.NearClipDistance)
		if err != nil {
			return errors.Wrap(err, "invalid cone table")
		}
		settings.Cone = cone
	}

	return nil
}

// LoadConeTable reads a field of view boundary table: a list of
// (horizontal, vertical) angle pairs in degrees.
func LoadConeTable(filename string) ([][2]float64, error) {
	var table coneTable
	if err := decodeFile(filename, &table); err != nil {
		return nil, errors.Wrap(err, "could not load cone table")
	}

	if len(table.Angles) == 0 {
		return nil, errors.Errorf("cone table %s is empty", filename)
	}

	return table.Angles, nil
}

func fromSettings(settings types.Settings) fileSettings {
	var file fileSettings

	file.Cone.Width = &settings.ConeWidth
	file.Cone.Height = &settings.ConeHeight
	file.Clip.Near = &settings.NearClipDistance
	file.Clip.Far = &settings.FarClipDistance
	file.Occlusion.Enabled = &settings.OcclusionEnabled
	file.Occlusion.Elevation = string(settings.OccluderElevation)
	file.Occlusion.Union = &settings.UnionOccluders
	file.Head.Width = &settings.HeadWidth
	file.Head.Height = &settings.HeadHeight
	file.Focal.Strategy = string(settings.FocalPointStrategy)
	file.Parallel = &settings.Parallel
	file.Workers = &settings.Workers
	file.DefaultScore = &settings.DefaultScore

	if settings.Cone != nil {
		for _, p := range settings.Cone.Polygon {
			file.Cone.Angles = append(file.Cone.Angles, [2]float64{
				number.RadToDeg(math.Atan2(p.GetX(), settings.NearClipDistance)),
				number.RadToDeg(math.Atan2(p.GetY(), settings.NearClipDistance)),
			})
		}
	}

	if !settings.FocalPoint.IsNull() {
		point := settings.FocalPoint.ToFloatArray()
		file.Focal.Point = &point
	}

	return file
}

func decodeFile(filename string, into interface{}) error {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	if isJSON(filename) {
		return errors.Wrapf(json.Unmarshal(data, into), "could not parse %s", filename)
	}

	return errors.Wrapf(yaml.Unmarshal(data, into), "could not parse %s", filename)
}

func isJSON(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".json"
}

// resolveRelative looks for a relative path next to the settings file
// first, then next to the executable.
func resolveRelative(relative string, basedir string) string {
	if filepath.IsAbs(relative) {
		return relative
	}

	candidate := path.Join(basedir, relative)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	exfolder, err := osext.ExecutableFolder()
	if err != nil {
		return candidate
	}

	return path.Join(exfolder, relative)
}

func toVectors(angles [][2]float64) []vector.Vector2 {
	res := make([]vector.Vector2, len(angles))
	for i, a := range angles {
		res[i] = vector.MakeVector2(a[0], a[1])
	}

	return res
}

func setFloat(dst *float64, value *float64) {
	if value != nil {
		*dst = *value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}
