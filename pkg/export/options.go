package export

import (
	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/ifw"
	"github.com/arthur-debert/portico/pkg/types"
)

// Switch names accepted by the export command
const (
	OptionDryRun   = "dry-run"
	OptionRaw      = "raw"
	OptionNuget    = "nuget"
	OptionIFW      = "ifw"
	OptionZip      = "zip"
	OptionSevenZip = "7zip"
)

// Setting names accepted by the export command
const (
	OptionNugetID          = "nuget-id"
	OptionNugetVersion     = "nuget-version"
	OptionIFWRepositoryURL = "ifw-repository-url"
	OptionIFWPackagesDir   = "ifw-packages-directory-path"
	OptionIFWRepositoryDir = "ifw-repository-directory-path"
	OptionIFWConfigFile    = "ifw-configuration-file-path"
	OptionIFWInstallerFile = "ifw-installer-file-path"
)

// SwitchDescriptions documents every switch, in display order.
var SwitchDescriptions = []struct {
	Name        string
	Description string
}{
	{OptionDryRun, "Do not actually export"},
	{OptionRaw, "Export to an uncompressed directory"},
	{OptionNuget, "Export a NuGet package"},
	{OptionIFW, "Export to an IFW-based installer"},
	{OptionZip, "Export to a zip file"},
	{OptionSevenZip, "Export to a 7zip (.7z) file"},
}

// RawArguments is the unvalidated command input handed to ParseArguments:
// positional package arguments plus the switches and settings that were
// actually present on the command line.
type RawArguments struct {
	Packages []string
	Switches map[string]bool
	Settings map[string]string
}

// Options is the parsed, validated input of one export invocation.
type Options struct {
	Specs []types.PackageSpec

	DryRun   bool
	Raw      bool
	Nuget    bool
	IFW      bool
	Zip      bool
	SevenZip bool

	// NugetID and NugetVersion are overrides; empty means default
	NugetID      string
	NugetVersion string

	IFWOptions ifw.Options
}

// RawBased reports whether any format that works off the staged directory
// tree was requested.
func (o *Options) RawBased() bool {
	return o.Raw || o.Nuget || o.Zip || o.SevenZip
}

// ParseArguments validates raw command input into Options. Every format
// specific setting is permitted only when its owning switch is present,
// and at least one export type (or dry-run) must be selected.
func ParseArguments(raw RawArguments, defaultTriplet string) (*Options, error) {
	opts := &Options{
		DryRun:   raw.Switches[OptionDryRun],
		Raw:      raw.Switches[OptionRaw],
		Nuget:    raw.Switches[OptionNuget],
		IFW:      raw.Switches[OptionIFW],
		Zip:      raw.Switches[OptionZip],
		SevenZip: raw.Switches[OptionSevenZip],
	}

	for _, arg := range raw.Packages {
		spec, err := types.ParsePackageSpec(arg, defaultTriplet)
		if err != nil {
			return nil, err
		}
		opts.Specs = append(opts.Specs, spec)
	}

	if !opts.RawBased() && !opts.IFW && !opts.DryRun {
		return nil, errors.New(errors.ErrNoFormatSelected,
			"must provide at least one export type: --raw --nuget --ifw --zip --7zip")
	}

	if err := settingsImply(raw.Settings, OptionNuget, opts.Nuget, []settingTarget{
		{OptionNugetID, &opts.NugetID},
		{OptionNugetVersion, &opts.NugetVersion},
	}); err != nil {
		return nil, err
	}

	if err := settingsImply(raw.Settings, OptionIFW, opts.IFW, []settingTarget{
		{OptionIFWRepositoryURL, &opts.IFWOptions.RepositoryURL},
		{OptionIFWPackagesDir, &opts.IFWOptions.PackagesDirPath},
		{OptionIFWRepositoryDir, &opts.IFWOptions.RepositoryDirPath},
		{OptionIFWConfigFile, &opts.IFWOptions.ConfigFilePath},
		{OptionIFWInstallerFile, &opts.IFWOptions.InstallerFilePath},
	}); err != nil {
		return nil, err
	}

	return opts, nil
}

type settingTarget struct {
	name string
	out  *string
}

// settingsImply copies each setting into its target when the owning switch
// is enabled, and rejects any setting that is present without it.
func settingsImply(settings map[string]string, owner string, enabled bool, targets []settingTarget) error {
	for _, target := range targets {
		value, present := settings[target.name]
		if !present {
			continue
		}
		if !enabled {
			return errors.Newf(errors.ErrOptionRequiresFormat,
				"--%s is only valid with --%s", target.name, owner)
		}
		*target.out = value
	}
	return nil
}
