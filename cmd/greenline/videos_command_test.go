package main

import (
	"bytes"
	"strings"
	"testing"

	"greenline/internal/testsupport"
)

func TestVideosDryRunThenApply(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteVideos(t, env.cfg, "caure-grupo-1.mp4", "Fazenda Tres Irmaos.mp4", "notes.txt")
	before := env.datasetBytes(t)

	out, _, err := env.run(t, "videos", "--dry-run")
	if err != nil {
		t.Fatalf("videos --dry-run: %v", err)
	}
	requireContains(t, out, "Videos indexed: 2")
	requireContains(t, out, "Updated: 2")
	requireContains(t, out, "Dry run")
	if !bytes.Equal(before, env.datasetBytes(t)) {
		t.Fatal("dry run wrote the dataset")
	}

	out, _, err = env.run(t, "videos")
	if err != nil {
		t.Fatalf("videos: %v", err)
	}
	requireContains(t, out, " - Caure Grupo 1: caure-grupo-1.mp4 (name)")
	records := testsupport.ReadDataset(t, env.cfg)
	if records[0].Video != "caure-grupo-1.mp4" || records[1].Video != "fazenda-tres-irmaos.mp4" {
		t.Fatalf("unexpected videos %q %q", records[0].Video, records[1].Video)
	}

	out, _, err = env.run(t, "videos")
	if err != nil {
		t.Fatalf("videos rerun: %v", err)
	}
	requireContains(t, out, "Updated: 0")
}

func TestVideosFromNameSkipsDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "videos", "--from-name")
	if err != nil {
		t.Fatalf("videos --from-name: %v", err)
	}
	requireContains(t, out, "Updated: 2")
	records := testsupport.ReadDataset(t, env.cfg)
	if records[1].Video != "Fazenda Três Irmãos.mp4" {
		t.Fatalf("unexpected video %q", records[1].Video)
	}
}

func TestVideosMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := env.cfg.Paths.VideosDir + "-absent"

	_, _, err := env.run(t, "videos", "--videos-dir", dir)
	requireUserError(t, err, "Diretório de vídeos não encontrado: "+dir)
}

func TestGetResolveVideoFallsBack(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "get", "--name", "Fazenda Três Irmãos", "--resolve-video")
	if err != nil {
		t.Fatalf("get --resolve-video: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if last := lines[len(lines)-1]; last != "Vídeo: background-validacao.mp4 (fallback)" {
		t.Fatalf("unexpected resolution line %q", last)
	}
}
