package http

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderer_LoadsEveryPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	pages := []string{
		"landing", "login", "registro",
		"admin_home", "admin_usuarios", "admin_creditos", "admin_credito", "admin_tesoreria",
		"inversionista_portafolio", "inversionista_oportunidades", "inversionista_oportunidad",
		"propietario_home",
	}
	for _, p := range pages {
		if _, ok := r.pages[p]; !ok {
			t.Fatalf("page %q not loaded", p)
		}
	}
	if _, ok := r.pages["layout"]; ok {
		t.Fatalf("layout must not be a page")
	}
}

func TestRenderer_WrapsPageInLayout(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, "login", pageData{Title: "Ingresar"}, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Ingresar") || !strings.Contains(out, `action="/login"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "/auth/signout") {
		t.Fatalf("anonymous pages must not show the sign-out form")
	}

	if err := r.Render(&buf, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
