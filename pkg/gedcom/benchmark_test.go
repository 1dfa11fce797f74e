package gedcom_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// syntheticTree builds a file with n individuals, each with a dated birth
// and a note continued over two lines.
func syntheticTree(n int) []byte {
	var b strings.Builder
	b.WriteString("0 HEAD\n1 SOUR BENCH\n1 CHAR UTF-8\n")
	for i := range n {
		fmt.Fprintf(&b, "0 @I%d@ INDI\n1 NAME Person%d /Family%d/\n1 SEX M\n", i, i, i%50)
		fmt.Fprintf(&b, "1 BIRT\n2 DATE ABT %d\n2 PLAC Town %d\n", 1700+i%300, i%20)
		b.WriteString("1 NOTE a note that\n2 CONT spans two lines\n")
	}
	b.WriteString("0 TRLR\n")
	return []byte(b.String())
}

func BenchmarkIndex(b *testing.B) {
	data := syntheticTree(1000)

	b.ResetTimer()
	for range b.N {
		reader, err := gedcom.NewReader(bytes.NewReader(data), gedcom.Options{Logger: quietLogger()})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := reader.Index(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecords(b *testing.B) {
	data := syntheticTree(1000)

	b.ResetTimer()
	for range b.N {
		reader, err := gedcom.NewReader(bytes.NewReader(data), gedcom.Options{Logger: quietLogger()})
		if err != nil {
			b.Fatal(err)
		}
		for _, err := range reader.Records("INDI") {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
