package threedm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/internal/version"
)

// HeaderSize is the length of the start banner.
const HeaderSize = 32

const banner = "3D Geometry File Format "

// startBanner returns the 32 byte banner: the fixed text followed by the
// format version right aligned in 8 columns.
func startBanner(formatVersion int) []byte {
	return []byte(fmt.Sprintf("%s%8d", banner, formatVersion))
}

// ParseHeader returns the format version from the start banner of data.
func ParseHeader(data []byte) (int, error) {
	if len(data) < HeaderSize || string(data[:len(banner)]) != banner {
		return 0, ErrNotArchive
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data[len(banner):HeaderSize])))
	if err != nil {
		return 0, fmt.Errorf("%w: bad version field: %v", ErrNotArchive, err)
	}
	return v, nil
}

func defaultComment() string {
	return "go-3dm " + version.String()
}

// commentBlock returns the comment chunk: the text followed by a
// Ctrl-Z and a NUL byte.
func commentBlock(text string) (*chunk.Chunk, error) {
	content := make([]byte, 0, len(text)+2)
	content = append(content, text...)
	content = append(content, 0x1A, 0x00)
	return chunk.NewLong(chunk.TagCommentBlock, content)
}
