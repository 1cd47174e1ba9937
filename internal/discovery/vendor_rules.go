package discovery

import "strings"

// binaryExtensions mirrors the teacher's extension database, trimmed to
// the families this module's classifier actually needs to special-case;
// everything not listed falls through to the content-based checks.
var binaryExtensions = map[string]bool{
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,

	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".tiff": true, ".tif": true,

	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".jar": true, ".war": true, ".ear": true,

	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".obj": true, ".bin": true,

	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".wav": true, ".flac": true, ".ogg": true,

	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,

	".db": true, ".sqlite": true, ".sqlite3": true,

	".pyc": true, ".pyo": true, ".class": true, ".pickle": true, ".pkl": true,
}

// isBinaryByExtension reports whether path's extension identifies it as a
// known binary format, with an explicit carve-out for minified text and
// source maps which are binary-adjacent but still parseable as text.
func isBinaryByExtension(path string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".min.js") || strings.HasSuffix(lower, ".min.css") || strings.HasSuffix(lower, ".map") {
		return false
	}
	ext := extOf(lower)
	return binaryExtensions[ext]
}

func extOf(lower string) string {
	i := strings.LastIndexByte(lower, '.')
	if i < 0 {
		return ""
	}
	return lower[i:]
}

// languageByExtension maps a file extension to the parser frontend that
// owns it (spec.md §4.3's five language families). Files whose extension
// isn't here are classified LangUnknown and treated as non-parseable.
var languageByExtension = map[string]string{
	".rs":   "rust",
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".py":   "python",
	".pyi":  "python",
	".pyx":  "cython",
	".pxd":  "cython",
	".pxi":  "cython",
	".c":    "c",
	".h":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".hh":   "cpp",
	".hxx":  "cpp",
}
