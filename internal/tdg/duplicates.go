package tdg

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// Duplicate detection over extracted code blocks: token normalization,
// MinHash/LSH candidate generation, then exact-token confirmation.
// Grounded on the teacher's internal/analysis/duplicate_detector.go, whose
// CodeBlock/isBlockNode/normalizeCode/normalizeIdentifiers shape is kept,
// retargeted from a tree-sitter-node walk onto the unified ast.Tree and
// extended past its exact/structural hash maps with a MinHash+LSH
// candidate-pair search so near-duplicates (Type-III) are found without an
// O(blocks^2) comparison pass.

const (
	minHashPerms             = 128
	lshBands                 = 32
	lshHashesPerBand         = minHashPerms / lshBands
	lshRows                  = lshHashesPerBand
	shingleSize              = 5
	cloneSimilarityThreshold = 0.8
)

var minHashCoeffs = buildMinHashCoeffs()

// buildMinHashCoeffs derives minHashPerms independent hash functions from
// one xxhash by universal hashing (h_i(x) = a_i*x + b_i mod prime) instead
// of requiring a seeded hash primitive — cespare/xxhash/v2 exposes only a
// single unseeded Sum64. The generator seed is fixed so the coefficients
// (and therefore every MinHash signature) are stable across runs.
func buildMinHashCoeffs() [][2]uint64 {
	r := rand.New(rand.NewSource(0x9E3779B97F4A7C15))
	coeffs := make([][2]uint64, minHashPerms)
	for i := range coeffs {
		coeffs[i] = [2]uint64{r.Uint64() | 1, r.Uint64()}
	}
	return coeffs
}

const mersennePrime61 = (1 << 61) - 1

// codeBlock is one candidate duplication unit: a Function/Method/Class
// declaration spanning at least minLines lines.
type codeBlock struct {
	file       types.FileID
	startLine  int
	endLine    int
	normalized string
	exactHash  uint64
	structHash uint64
	sig        []uint64
}

var blockKinds = []ast.Kind{ast.KindFunction, ast.KindMethod, ast.KindClass}

var wordRE = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|[0-9]+(\.[0-9]+)?|[^\sA-Za-z0-9_]`)

var keywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "return": true,
	"def": true, "fn": true, "function": true, "class": true, "try": true,
	"except": true, "catch": true, "match": true, "case": true, "switch": true,
	"import": true, "from": true, "let": true, "const": true, "var": true,
	"public": true, "private": true, "static": true, "break": true,
	"continue": true, "pub": true, "impl": true, "struct": true, "enum": true,
	"trait": true, "throw": true, "new": true, "true": true, "false": true,
	"null": true, "none": true, "nil": true, "and": true, "or": true, "not": true,
}

// extractBlocks walks ft's tree for block-kind declarations, tokenizing and
// normalizing each one wide enough to clear minLines.
func extractBlocks(ft symtab.FileTree, content []byte, minLines int) []codeBlock {
	var blocks []codeBlock
	for _, kind := range blockKinds {
		for _, n := range ft.Tree.FindByKind(ft.Tree.Root(), kind) {
			span := ft.Tree.Span(n)
			lines := int(span.EndLine) - int(span.StartLine) + 1
			if lines < minLines {
				continue
			}
			if int(span.EndByte) > len(content) || span.EndByte <= span.StartByte {
				continue
			}
			raw := content[span.StartByte:span.EndByte]
			tokens := tokenize(raw)
			if len(tokens) < shingleSize {
				continue
			}
			normalized := normalizeTokens(tokens)
			blocks = append(blocks, codeBlock{
				file:       ft.File.ID,
				startLine:  int(span.StartLine),
				endLine:    int(span.EndLine),
				normalized: strings.Join(normalized, " "),
				exactHash:  xxhash.Sum64(raw),
				structHash: xxhash.Sum64String(strings.Join(normalized, " ")),
				sig:        minHashSignature(normalized),
			})
		}
	}
	return blocks
}

func tokenize(src []byte) []string {
	return wordRE.FindAllString(string(src), -1)
}

// normalizeTokens keeps keywords and punctuation as-is and collapses every
// other identifier/number to a placeholder, the same structural-comparison
// trick as the teacher's normalizeIdentifiers.
func normalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		switch {
		case keywords[lower]:
			out[i] = lower
		case tok[0] == '_' || isAlpha(tok[0]):
			out[i] = "ID"
		default:
			out[i] = tok
		}
	}
	return out
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// shingles returns every contiguous run of shingleSize normalized tokens.
func shingles(normalized []string) []string {
	if len(normalized) < shingleSize {
		return nil
	}
	out := make([]string, 0, len(normalized)-shingleSize+1)
	for i := 0; i+shingleSize <= len(normalized); i++ {
		out = append(out, strings.Join(normalized[i:i+shingleSize], " "))
	}
	return out
}

// minHashSignature computes the MinHash sketch over a block's shingle set.
func minHashSignature(normalized []string) []uint64 {
	sig := make([]uint64, minHashPerms)
	for i := range sig {
		sig[i] = ^uint64(0)
	}
	for _, sh := range shingles(normalized) {
		base := xxhash.Sum64String(sh)
		for i, c := range minHashCoeffs {
			h := (c[0]*base + c[1]) % mersennePrime61
			if h < sig[i] {
				sig[i] = h
			}
		}
	}
	return sig
}

// lshBucketKeys bands sig into lshBands keys of lshRows hashes each, so two
// blocks sharing any banded key are a candidate pair worth confirming.
func lshBucketKeys(sig []uint64) []uint64 {
	keys := make([]uint64, lshBands)
	for b := 0; b < lshBands; b++ {
		h := xxhash.New()
		start := b * lshRows
		for i := 0; i < lshRows; i++ {
			var buf [8]byte
			v := sig[start+i]
			for j := 0; j < 8; j++ {
				buf[j] = byte(v >> (8 * j))
			}
			_, _ = h.Write(buf[:])
		}
		keys[b] = h.Sum64()
	}
	return keys
}

// unionFind groups blocks transitively connected by a confirmed duplicate
// edge into one cluster.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// Detect finds duplicate/near-duplicate blocks across files: candidate
// pairs come from shared LSH buckets, each is confirmed by exact hash
// (Type-I), normalized-structural hash (Type-II), or Levenshtein
// similarity over the normalized token stream (Type-III), then grouped by
// union-find into types.CloneGroup records.
func Detect(files []symtab.FileTree, content map[types.FileID][]byte, minLines int) []types.CloneGroup {
	var blocks []codeBlock
	for _, ft := range files {
		blocks = append(blocks, extractBlocks(ft, content[ft.File.ID], minLines)...)
	}
	if len(blocks) < 2 {
		return nil
	}

	buckets := make(map[uint64][]int)
	for i, b := range blocks {
		for _, key := range lshBucketKeys(b.sig) {
			buckets[key] = append(buckets[key], i)
		}
	}

	uf := newUnionFind(len(blocks))
	edgeType := make(map[[2]int]types.CloneType)
	seen := make(map[[2]int]bool)

	for _, members := range buckets {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if a > b {
					a, b = b, a
				}
				key := [2]int{a, b}
				if seen[key] {
					continue
				}
				seen[key] = true
				if ct, ok := confirm(blocks[a], blocks[b]); ok {
					uf.union(a, b)
					if existing, has := edgeType[key]; !has || ct > existing {
						edgeType[key] = ct
					}
				}
			}
		}
	}

	clusters := make(map[int][]int)
	for i := range blocks {
		root := uf.find(i)
		clusters[root] = append(clusters[root], i)
	}

	var groups []types.CloneGroup
	for _, members := range clusters {
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		group := types.CloneGroup{Type: types.CloneTypeI}
		for _, idx := range members {
			b := blocks[idx]
			group.Members = append(group.Members, types.CloneMember{
				FileID: b.file, StartLine: b.startLine, EndLine: b.endLine,
			})
		}
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				lo, hi := members[a], members[b]
				if lo > hi {
					lo, hi = hi, lo
				}
				if ct, ok := edgeType[[2]int{lo, hi}]; ok && ct > group.Type {
					group.Type = ct
				}
			}
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Members) == 0 || len(groups[j].Members) == 0 {
			return len(groups[i].Members) > len(groups[j].Members)
		}
		return groups[i].Members[0].FileID < groups[j].Members[0].FileID
	})
	return groups
}

// confirm classifies a candidate pair, or rejects it if the blocks turn out
// not similar enough despite sharing an LSH bucket (a false positive from
// banding).
func confirm(a, b codeBlock) (types.CloneType, bool) {
	if a.exactHash == b.exactHash {
		return types.CloneTypeI, true
	}
	if a.structHash == b.structHash {
		return types.CloneTypeII, true
	}
	// edlib's Levenshtein mode returns a normalized distance (0-1), not a
	// similarity score, per its own StringsSimilarity doc.
	distance, err := edlib.StringsSimilarity(a.normalized, b.normalized, edlib.Levenshtein)
	if err != nil {
		return 0, false
	}
	if 1.0-float64(distance) >= cloneSimilarityThreshold {
		return types.CloneTypeIII, true
	}
	return 0, false
}
