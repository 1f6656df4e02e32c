package export

import (
	"path/filepath"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/executor"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/types"
	"github.com/beevik/etree"
)

// Defaults for the NuGet package manifest
const (
	defaultNugetVersion = "1.0.0"
	msbuildNamespace    = "http://schemas.microsoft.com/developer/msbuild/2003"
)

// targetsImportPath is the path the redirect imports. The redirect file is
// mounted at build/native/ inside the package, two directory levels below
// the package root, so it walks up exactly two levels to reach the staged
// scripts tree.
const targetsImportPath = "../../scripts/buildsystems/msbuild/portico.targets"

// NugetPackager turns a staged tree into a NuGet package by synthesizing a
// nuspec manifest plus an MSBuild targets redirect and handing both to the
// external nuget tool.
type NugetPackager struct {
	fs     types.FS
	paths  paths.Paths
	runner executor.Runner
	nuget  string
}

// NewNugetPackager creates a NuGet packager driving the given nuget
// executable.
func NewNugetPackager(fs types.FS, p paths.Paths, runner executor.Runner, nuget string) *NugetPackager {
	return &NugetPackager{fs: fs, paths: p, runner: runner, nuget: nuget}
}

// Package creates <output_dir>/<id>.nupkg from the staged tree. The id
// defaults to the staged tree's basename, the version to 1.0.0.
func (p *NugetPackager) Package(stagedTree, outputDir, id, version string) (string, error) {
	if id == "" {
		id = filepath.Base(stagedTree)
	}
	if version == "" {
		version = defaultNugetVersion
	}

	tmpDir := p.paths.BuildsystemsTmpDir()
	if err := p.fs.MkdirAll(tmpDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrNugetPack, "failed to create scratch directory %s", tmpDir)
	}

	targetsRedirect := filepath.Join(tmpDir, "portico.export.nuget.targets")
	if err := p.writeTargetsRedirect(targetsRedirect); err != nil {
		return "", err
	}

	nuspec := filepath.Join(tmpDir, "portico.export.nuspec")
	if err := p.writeNuspec(nuspec, stagedTree, targetsRedirect, id, version); err != nil {
		return "", err
	}

	// -NoDefaultExcludes is needed for the root marker file
	err := p.runner.Run(p.nuget,
		"pack", nuspec,
		"-OutputDirectory", outputDir,
		"-NoDefaultExcludes")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNugetPack, "NuGet package creation failed").
			WithDetail("exit_code", executor.ExitCode(err))
	}

	return filepath.Join(outputDir, id+".nupkg"), nil
}

// writeTargetsRedirect writes the MSBuild redirect whose sole content is a
// conditional import of the staged build-system scripts.
func (p *NugetPackager) writeTargetsRedirect(path string) error {
	doc := etree.NewDocument()
	project := doc.CreateElement("Project")
	project.CreateAttr("ToolsVersion", "4.0")
	project.CreateAttr("xmlns", msbuildNamespace)

	imp := project.CreateElement("Import")
	imp.CreateAttr("Condition", "Exists('"+targetsImportPath+"')")
	imp.CreateAttr("Project", targetsImportPath)

	return p.writeDocument(doc, path)
}

// writeNuspec writes the package manifest: metadata plus the four file
// mappings (installed tree, scripts tree, root marker, targets redirect).
func (p *NugetPackager) writeNuspec(path, stagedTree, targetsRedirect, id, version string) error {
	doc := etree.NewDocument()
	pkg := doc.CreateElement("package")

	metadata := pkg.CreateElement("metadata")
	metadata.CreateElement("id").SetText(id)
	metadata.CreateElement("version").SetText(version)
	metadata.CreateElement("authors").SetText("portico")
	metadata.CreateElement("description").SetText("Portico NuGet export")

	files := pkg.CreateElement("files")
	addFileMapping(files, filepath.Join(stagedTree, paths.InstalledDirName, "**"), "installed")
	addFileMapping(files, filepath.Join(stagedTree, paths.ScriptsDirName, "**"), "scripts")
	addFileMapping(files, filepath.Join(stagedTree, paths.RootMarkerFile), "")
	addFileMapping(files, targetsRedirect, "build/native/"+id+".targets")

	return p.writeDocument(doc, path)
}

func addFileMapping(files *etree.Element, src, target string) {
	file := files.CreateElement("file")
	file.CreateAttr("src", src)
	file.CreateAttr("target", target)
}

func (p *NugetPackager) writeDocument(doc *etree.Document, path string) error {
	doc.Indent(4)
	data, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, errors.ErrNugetPack, "failed to serialize %s", path)
	}
	if err := p.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrNugetPack, "failed to write %s", path)
	}
	return nil
}
