package discovery

// DefaultExcludes are the glob patterns applied before any project config
// is consulted: VCS metadata, package-manager directories, build output,
// and minified/bundled assets that are never worth parsing.
var DefaultExcludes = []string{
	"**/.git/**",

	"**/node_modules/**",
	"**/vendor/**",
	"**/bower_components/**",
	"**/jspm_packages/**",

	"**/dist/**",
	"**/build/**",
	"**/out/**",
	"**/target/**",
	"**/bin/**",
	"**/obj/**",
	"**/__pycache__/**",
	"**/*.min.js",
	"**/*.min.css",
	"**/*.bundle.js",
	"**/*.chunk.js",
	"**/*.min.map",
}

// HiddenDirExclude is folded into a Walker's excludes only when
// DeepContextConfig.IncludeHidden is false, so dotfiles stay reachable
// when a caller opts in.
const HiddenDirExclude = "**/.*/**"

// BuildArtifactSuffixes flag a file as SkipBuildArtifact regardless of
// directory, for artifacts that land outside a conventional build/ tree.
var BuildArtifactSuffixes = []string{
	".pyc", ".pyo", ".class", ".o", ".obj", ".a", ".so", ".dylib", ".dll",
}
