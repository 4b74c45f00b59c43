package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
	"github.com/goliatone/go-runtimeinputs/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	passwords    []string
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func deploySchema() schema.Schema {
	return schema.Schema{
		ID: "deploy",
		Declarations: []schema.Declaration{
			{Path: "service.name", Type: "string", Label: "Service", Constraints: schema.Constraints{Required: true}},
			{Path: "service.port", Type: "number"},
			{Path: "probe.method", Type: "http_method"},
			{Path: "notify", Type: "boolean"},
			{Path: "delegates", Type: "delegate_selector"},
			{Path: "token", Type: "secret"},
			{Path: "flux", Type: "quantum_input"},
		},
	}
}

func TestPrompter_Run(t *testing.T) {
	c, err := form.New(deploySchema(), form.WithReferences(references.Snapshot{
		references.LookupHTTPMethod: references.HTTPMethods(),
		references.LookupDelegate:   {{Value: "linux"}, {Value: "docker"}},
	}))
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}

	driver := &stubDriver{
		inputs:    []string{"api", "abc", "8080"},
		selectIdx: []int{1, 0},
		multiIdx:  [][]int{{0, 1}},
		passwords: []string{"<+input>"},
	}
	report, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected valid report, got %#v", report.Errors)
	}

	want := form.Values{
		"service.name": "api",
		"service.port": float64(8080),
		"probe.method": "POST",
		"notify":       true,
		"delegates":    "linux,docker",
		"token":        "<+input>",
	}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if !containsMessage(driver.infoMessages, `service.port: "abc" is not a valid number`) {
		t.Fatalf("expected re-prompt message, got %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, "skipping flux (unsupported type quantum_input)") {
		t.Fatalf("expected unsupported notice, got %v", driver.infoMessages)
	}

	methods := driver.selects[0]
	if methods.Options[len(methods.Options)-1] != "runtime input (<+input>)" {
		t.Fatalf("expected runtime input choice, got %v", methods.Options)
	}
}

func TestPrompter_KeepsDeferredValues(t *testing.T) {
	const expr = "<+pipeline.variables.method>"
	c, err := form.New(schema.Schema{Declarations: []schema.Declaration{
		{Path: "enabled", Type: "boolean"},
		{Path: "probe.method", Type: "http_method"},
	}}, form.WithPrefill(map[string]any{"enabled": "<+input>", "probe.method": expr}))
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}

	driver := &stubDriver{selectIdx: []int{2, 8}}
	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), c); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.confirmPos != 0 {
		t.Fatalf("expected no confirm prompt for a runtime boolean")
	}

	enabled := driver.selects[0]
	if diff := cmp.Diff([]string{"true", "false", "runtime input (<+input>)"}, enabled.Options); diff != "" {
		t.Fatalf("boolean choices mismatch (-want +got):\n%s", diff)
	}
	if enabled.DefaultIndex != 2 {
		t.Fatalf("expected runtime input preselected, got %d", enabled.DefaultIndex)
	}

	method := driver.selects[1]
	if got := method.Options[len(method.Options)-1]; got != "keep current ("+expr+")" {
		t.Fatalf("expected keep current choice, got %v", method.Options)
	}
	if method.DefaultIndex != 8 {
		t.Fatalf("expected current expression preselected, got %d", method.DefaultIndex)
	}

	want := form.Values{"enabled": "<+input>", "probe.method": expr}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompter_FixedOnlyBooleanConfirms(t *testing.T) {
	c, err := form.New(schema.Schema{Declarations: []schema.Declaration{
		{Path: "enabled", Type: "boolean", AllowedKinds: []runtimevalue.Kind{runtimevalue.KindFixed}},
	}})
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	driver := &stubDriver{confirm: []bool{true}}
	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), c); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.selects) != 0 {
		t.Fatalf("expected confirm only, got selects %v", driver.selects)
	}
	if diff := cmp.Diff(form.Values{"enabled": true}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompter_RuntimeChoiceAndSubset(t *testing.T) {
	c, err := form.New(deploySchema(), form.WithPrefill(map[string]any{"probe.method": "<+input>"}))
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	driver := &stubDriver{selectIdx: []int{7}}
	p := New(WithPromptDriver(driver), WithSubset(render.FieldSubset{ValueKinds: []string{"runtime"}}))

	if _, err := p.Run(context.Background(), c); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.selects[0].DefaultIndex != 7 {
		t.Fatalf("expected sentinel preselected, got %d", driver.selects[0].DefaultIndex)
	}
	if got, _ := c.Value("probe.method"); got != "<+input>" {
		t.Fatalf("expected runtime input, got %v", got)
	}
}

func TestPrompter_TooManyAttempts(t *testing.T) {
	c, err := form.New(schema.Schema{Declarations: []schema.Declaration{
		{Path: "replicas", Type: "number", Constraints: schema.Constraints{Required: true}},
	}})
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	driver := &stubDriver{inputs: []string{"", "x"}}
	_, err = New(WithPromptDriver(driver), WithMaxAttempts(2)).Run(context.Background(), c)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestSummary_Render(t *testing.T) {
	c, err := form.New(deploySchema(), form.WithPrefill(map[string]any{"service.port": "<+input>"}))
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	c.Validate()

	out, err := Summary{}.Render(context.Background(), render.Build(c, render.Options{}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, want := range []string{"PATH", "service.port", "runtime", "<+input>", "error: service.name: required", "unsupported"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func containsMessage(messages []string, want string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, want) {
			return true
		}
	}
	return false
}

func TestSummary_Golden(t *testing.T) {
	s := testsupport.LoadSchema(t, "../../schema/testdata/deploy.yaml")
	c := testsupport.NewCoordinator(t, s, form.WithPrefill(map[string]any{"service.port": "<+input>"}))
	c.Validate()

	out, err := Summary{}.Render(testsupport.Context(), render.Build(c, render.Options{}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := "testdata/summary.golden"
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}
	if diff := cmp.Diff(string(testsupport.MustReadGolden(t, golden)), string(out)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
