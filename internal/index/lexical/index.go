package lexical

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// Index is a TF-IDF inverted index over the legal corpus. It backs the
// lexical component of hybrid ranking and the last-resort retrieval tier
// when no embedding backend is available.
//
// An Index is immutable after Build; rebuilds construct a fresh Index and
// swap it in atomically, so readers never see a half-built vocabulary.
type Index struct {
	vocabulary   map[string]int
	idf          []float64
	docs         []indexedDoc
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	prepared     bool
}

type indexedDoc struct {
	id     string
	vector map[int]float64 // sparse, L2-normalized TF-IDF weights
}

// Hit is a single lexical match
type Hit struct {
	DocumentID string
	Score      float64
}

// NewIndex creates an empty, unprepared index
func NewIndex() *Index {
	return &Index{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\d+`),
		stopwords:    defaultStopwords(),
	}
}

// Build constructs the vocabulary, IDF table and per-document vectors from
// the corpus. Documents are indexed on citation plus body text so act names
// and section numbers are searchable.
func (x *Index) Build(docs []*domain.Document) error {
	if len(docs) == 0 {
		return domain.ErrCorpusEmpty
	}

	// Document frequencies over unique terms per document
	df := make(map[string]int)
	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokens := x.tokenize(doc.SearchText())
		tokenized[i] = tokens
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering keeps vectors reproducible across builds
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return domain.ErrIndexNotBuilt
	}

	x.vocabulary = make(map[string]int, len(terms))
	x.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		x.vocabulary[term] = i
		// Smoothed IDF
		x.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	x.docs = make([]indexedDoc, len(docs))
	for i, doc := range docs {
		x.docs[i] = indexedDoc{
			id:     doc.ID,
			vector: x.vectorize(tokenized[i]),
		}
	}
	x.prepared = true
	return nil
}

// Ready reports whether Build has completed
func (x *Index) Ready() bool {
	return x != nil && x.prepared
}

// Terms returns the vocabulary size
func (x *Index) Terms() int {
	if x == nil {
		return 0
	}
	return len(x.idf)
}

// Documents returns the number of indexed documents
func (x *Index) Documents() int {
	if x == nil {
		return 0
	}
	return len(x.docs)
}

// Search ranks documents by cosine similarity between the query vector and
// each document vector. Ties break on document id ascending so repeated
// queries return identical orderings. Hits below minScore are dropped.
func (x *Index) Search(query string, topK int, minScore float64) ([]Hit, error) {
	if !x.Ready() {
		return nil, domain.ErrIndexNotBuilt
	}

	qvec := x.vectorize(x.tokenize(query))
	if len(qvec) == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, 0, len(x.docs))
	for _, doc := range x.docs {
		score := sparseCosine(qvec, doc.vector)
		if score < minScore {
			continue
		}
		hits = append(hits, Hit{DocumentID: doc.id, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Score returns the lexical similarity between a query and one document,
// used when fusing scores for documents the vector tier already selected.
func (x *Index) Score(query, documentID string) float64 {
	if !x.Ready() {
		return 0
	}
	qvec := x.vectorize(x.tokenize(query))
	if len(qvec) == 0 {
		return 0
	}
	for _, doc := range x.docs {
		if doc.id == documentID {
			return sparseCosine(qvec, doc.vector)
		}
	}
	return 0
}

// vectorize builds an L2-normalized sparse TF-IDF vector from tokens
func (x *Index) vectorize(tokens []string) map[int]float64 {
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if idx, ok := x.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	vec := make(map[int]float64, len(tf))
	if total == 0 {
		return vec
	}
	norm := 0.0
	for idx, count := range tf {
		w := (float64(count) / float64(total)) * x.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func (x *Index) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := x.tokenPattern.FindAllString(lower, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, isStop := x.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sparseCosine(a, b map[int]float64) float64 {
	// Vectors are L2-normalized, so cosine is the plain dot product
	if len(b) < len(a) {
		a, b = b, a
	}
	dot := 0.0
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			dot += av * bv
		}
	}
	return dot
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
