package config

// Config is the top-level configuration parsed from onepack.yaml.
type Config struct {
	Build Build `yaml:"build"`
	Log   Log   `yaml:"log"`
}

// Build configures the packaging pipeline: which external tools to drive
// and where the inputs and outputs live, all relative to the working
// directory.
type Build struct {
	Toolchain string `yaml:"toolchain"`  // interpreter binary probed before the pipeline runs
	Installer string `yaml:"installer"`  // package-installation binary
	Packager  string `yaml:"packager"`   // bundling tool binary, also what the tool stage installs
	Manifest  string `yaml:"manifest"`   // dependency manifest file
	Spec      string `yaml:"spec"`       // build specification file
	MirrorURL string `yaml:"mirror_url"` // alternate package source, empty = installer default
	BuildDir  string `yaml:"build_dir"`  // transient packaging workspace
	DistDir   string `yaml:"dist_dir"`   // final artifact directory
	Headless  bool   `yaml:"headless"`   // skip the end-of-run acknowledgment pause
}

// Log configures diagnostic logging.
type Log struct {
	Format string `yaml:"format"` // tint, json or text
	Level  string `yaml:"level"`  // debug, info, warn, error
}
