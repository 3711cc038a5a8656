package parser

import "testing"

func TestParseCompose(t *testing.T) {
	content := `
services:
  web:
    image: nginx:1.25
    ports:
      - "80:80"
    depends_on:
      - api
  api:
    image: app:latest
    environment:
      DB_HOST: db
  db:
    image: postgres:16
    volumes:
      - dbdata:/var/lib/postgresql/data
    environment:
      - POSTGRES_PASSWORD=secret
`
	services, err := ParseCompose(content)
	if err != nil {
		t.Fatal(err)
	}

	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}

	web := services["web"]
	if web.Image != "nginx:1.25" {
		t.Errorf("unexpected web image: %s", web.Image)
	}
	if !web.DependsOn.Has("api") {
		t.Error("web should depend on api")
	}

	if services["api"].Environment["DB_HOST"] != "db" {
		t.Error("mapping-form environment not parsed")
	}
	if services["db"].Environment["POSTGRES_PASSWORD"] != "secret" {
		t.Error("list-form environment not parsed")
	}
}

func TestParseComposeInvalid(t *testing.T) {
	if _, err := ParseCompose(": not yaml : ["); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestParseDockerfile(t *testing.T) {
	content := `
FROM python:3.12-slim AS base
WORKDIR /app
COPY . .
EXPOSE 8000 9000
CMD ["python", "run.py"]
`
	svc := ParseDockerfile("Dockerfile", content)

	if svc.Image != "python:3.12-slim" {
		t.Errorf("unexpected image: %s", svc.Image)
	}
	if len(svc.Ports) != 2 {
		t.Errorf("expected 2 ports, got %v", svc.Ports)
	}
}
