package features

// DefaultTextDim is the width of sentence embeddings a future model would produce
const DefaultTextDim = 384

// Embedder turns ownership notes into a numeric vector. Only ZeroEmbedder
// exists today; scoring ignores the embedding.
type Embedder interface {
	Embed(text string) []float64
}

// ZeroEmbedder returns zero vectors
type ZeroEmbedder struct {
	Dim int // Zero means DefaultTextDim
}

// Embed returns a zero vector of the embedder's width
func (z ZeroEmbedder) Embed(text string) []float64 {
	return TextToVector(text, z.Dim)
}

// TextToVector returns a placeholder vector for text
func TextToVector(_ string, dim int) []float64 {
	if dim <= 0 {
		dim = DefaultTextDim
	}
	return make([]float64, dim)
}

// BatchTextToVectors embeds each text in order
func BatchTextToVectors(texts []string, dim int) [][]float64 {
	vectors := make([][]float64, len(texts))
	for i, t := range texts {
		vectors[i] = TextToVector(t, dim)
	}
	return vectors
}
