package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		fileType   string
		original   string
		wantPrefix string
		wantSuffix string
	}{
		{"avatar", "foto.png", "tenants/7/avatars/", ".png"},
		{"documento", "contrato.pdf", "tenants/7/documentos/", ".pdf"},
		{"anexo", "recibo.jpg", "tenants/7/anexos/", ".jpg"},
		{"outro", "arquivo.bin", "tenants/7/uploads/", ".bin"},
	}

	for _, tt := range tests {
		key := ObjectKey(7, tt.fileType, tt.original)
		if !strings.HasPrefix(key, tt.wantPrefix) {
			t.Errorf("ObjectKey(%s) = %q, want prefix %q", tt.fileType, key, tt.wantPrefix)
		}
		if !strings.HasSuffix(key, tt.wantSuffix) {
			t.Errorf("ObjectKey(%s) = %q, want suffix %q", tt.fileType, key, tt.wantSuffix)
		}
	}
}

func TestObjectKeyWithoutExtension(t *testing.T) {
	key := ObjectKey(1, "anexo", "semextensao")
	if strings.Contains(key, ".") {
		t.Errorf("sem extensão não deveria ter ponto: %q", key)
	}
}

func TestObjectKeyUnique(t *testing.T) {
	a := ObjectKey(1, "avatar", "foto.png")
	b := ObjectKey(1, "avatar", "foto.png")
	if a == b {
		t.Error("chaves de uploads distintos não podem colidir")
	}
}
