package langdetect

import (
	"testing"
)

func BenchmarkDetectGo(b *testing.B) {
	code := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}"
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectHRML(b *testing.B) {
	code := "jf Notes\n\nja one\nja two\n\nkl quoted\njs"
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectClassifier(b *testing.B) {
	code := "#include <stdio.h>\nint main(void) { return 0; }"
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}
