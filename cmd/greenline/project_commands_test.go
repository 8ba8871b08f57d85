package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"greenline/internal/testsupport"
)

func TestListPrintsTotalAndLines(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "Total: 2\n- Caure Grupo 1 (credits: 1200)\n- Fazenda Três Irmãos (credits: 300)\n"
	if out != want {
		t.Fatalf("list output:\n%s\nwant:\n%s", out, want)
	}

	out, _, err = env.run(t, "list", "--table")
	if err != nil {
		t.Fatalf("list --table: %v", err)
	}
	requireContains(t, out, "Total: 2")
	requireContains(t, out, "Fazenda Três Irmãos")
	requireContains(t, out, "Créditos")
}

func TestNoArgsPrintsUsage(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := env.run(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "Usage:")
	requireContains(t, out, "rename")
}

func TestAddAppliesDefaultsAndSorts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "add", "--name", "Aldeia Nova", "--state", "Acre")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out != "Adicionado.\n" {
		t.Fatalf("add output %q", out)
	}

	out, _, err = env.run(t, "get", "--name", "Aldeia Nova")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode get output: %v", err)
	}
	if rec["country"] != "Brasil" || rec["credits"] != float64(0) || rec["link"] != "" {
		t.Fatalf("unexpected defaults %v", rec)
	}

	records := testsupport.ReadDataset(t, env.cfg)
	if len(records) != 3 || records[0].Name != "Aldeia Nova" {
		t.Fatalf("dataset not sorted after add: %+v", records)
	}
}

func TestAddDuplicateLeavesFileUnchanged(t *testing.T) {
	env := setupCLITestEnv(t)
	before := env.datasetBytes(t)

	_, _, err := env.run(t, "add", "--name", "Caure Grupo 1")
	requireUserError(t, err, "Já existe projeto com esse nome")

	if after := env.datasetBytes(t); !bytes.Equal(before, after) {
		t.Fatalf("dataset changed after conflict:\n%s", after)
	}
}

func TestUpdateAcceptsTrailingAssignments(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "update", "--name", "Caure Grupo 1", "--set", "credits=12345", "biome=Mata Atlântica")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out != "Atualizado.\n" {
		t.Fatalf("update output %q", out)
	}
	records := testsupport.ReadDataset(t, env.cfg)
	if records[0].Credits != 12345 || records[0].Biome != "Mata Atlântica" {
		t.Fatalf("unexpected record %+v", records[0])
	}

	_, _, err = env.run(t, "update", "--name", "Caure Grupo 1", "--set", "credits=abc")
	requireUserError(t, err, "credits precisa ser número")

	_, _, err = env.run(t, "update", "--name", "Caure Grupo 1", "--set", "semvalor")
	requireUserError(t, err, "Formato inválido (use campo=valor): semvalor")

	_, _, err = env.run(t, "update", "--name", "Caure Grupo 1")
	requireUserError(t, err, "Use --set campo=valor ...")

	_, _, err = env.run(t, "update", "--set", "credits=1")
	requireUserError(t, err, "É necessário fornecer --name")
}

func TestIncHandlesNegativeAndInvalidDeltas(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "inc", "--name", "Fazenda Três Irmãos", "--credits", "-50")
	if err != nil {
		t.Fatalf("inc: %v", err)
	}
	if out != "Créditos atualizados para 250\n" {
		t.Fatalf("inc output %q", out)
	}

	out, _, err = env.run(t, "inc", "--name", "Fazenda Três Irmãos", "--credits=-50")
	if err != nil {
		t.Fatalf("inc: %v", err)
	}
	requireContains(t, out, "200")

	before := env.datasetBytes(t)
	_, _, err = env.run(t, "inc", "--name", "Fazenda Três Irmãos", "--credits", "muito")
	requireUserError(t, err, "Valor inválido para credits")
	if !bytes.Equal(before, env.datasetBytes(t)) {
		t.Fatal("dataset changed after invalid inc")
	}
}

func TestRenameAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "rename", "--name", "Caure Grupo 1", "--to", "Fazenda Três Irmãos")
	requireUserError(t, err, "Já existe projeto com o novo nome")

	_, _, err = env.run(t, "rename", "--name", "Caure Grupo 1")
	requireUserError(t, err, "Forneça --to <novo nome>")

	out, _, err := env.run(t, "rename", "--name", "Caure Grupo 1", "--to", "Caure Grupo 1A")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if out != "Renomeado.\n" {
		t.Fatalf("rename output %q", out)
	}

	out, _, err = env.run(t, "remove", "--name", "Caure Grupo 1A")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out != "Removido.\n" {
		t.Fatalf("remove output %q", out)
	}

	_, _, err = env.run(t, "remove", "--name", "Caure Grupo 1A")
	requireUserError(t, err, "Projeto não encontrado")

	_, _, err = env.run(t, "get")
	requireUserError(t, err, "É necessário fornecer --name")
}

func TestGetYAMLKeepsFieldOrder(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "get", "--name", "Caure Grupo 1", "--format", "yaml")
	if err != nil {
		t.Fatalf("get yaml: %v", err)
	}
	nameAt := strings.Index(out, "name: Caure Grupo 1")
	creditsAt := strings.Index(out, "credits: 1200")
	if nameAt != 0 || creditsAt < nameAt {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	if strings.Contains(out, "{") {
		t.Fatalf("expected block style yaml:\n%s", out)
	}

	_, _, err = env.run(t, "get", "--name", "Caure Grupo 1", "--format", "xml")
	requireUserError(t, err, "Formato desconhecido: xml (use json ou yaml)")
}

func TestMissingDatasetIsReported(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := env.cfg.Paths.Dataset + ".missing"

	_, _, err := env.run(t, "--dataset", missing, "list")
	requireUserError(t, err, "Arquivo de projetos não encontrado: "+missing)
}
