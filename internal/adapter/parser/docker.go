package parser

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"archlens/internal/domain"
)

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image       string   `yaml:"image"`
	DependsOn   []string `yaml:"depends_on"`
	Ports       []string `yaml:"ports"`
	Volumes     []string `yaml:"volumes"`
	Environment envMap   `yaml:"environment"`
}

// envMap accepts both compose environment forms: a mapping and a list of
// KEY=VALUE strings.
type envMap map[string]string

func (e *envMap) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		m := make(map[string]string)
		if err := value.Decode(&m); err != nil {
			return err
		}
		*e = m
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		m := make(map[string]string, len(items))
		for _, item := range items {
			key, val, _ := strings.Cut(item, "=")
			m[key] = val
		}
		*e = m
	default:
		return fmt.Errorf("unsupported environment node kind %d", value.Kind)
	}
	return nil
}

// ParseCompose extracts services from a docker-compose file.
func ParseCompose(content string) (map[string]*domain.DockerService, error) {
	var cf composeFile
	if err := yaml.Unmarshal([]byte(content), &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose file: %w", err)
	}

	services := make(map[string]*domain.DockerService, len(cf.Services))
	for name, svc := range cf.Services {
		services[name] = &domain.DockerService{
			Name:        name,
			Image:       svc.Image,
			DependsOn:   domain.NewStringSet(svc.DependsOn...),
			Ports:       svc.Ports,
			Volumes:     svc.Volumes,
			Environment: svc.Environment,
		}
	}
	return services, nil
}

// ParseDockerfile extracts a service from a Dockerfile: the final FROM
// image and any EXPOSE ports. The service is named after the file.
func ParseDockerfile(name, content string) *domain.DockerService {
	svc := &domain.DockerService{
		Name:      name,
		DependsOn: domain.NewStringSet(),
	}

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "FROM":
			svc.Image = fields[1]
		case "EXPOSE":
			svc.Ports = append(svc.Ports, fields[1:]...)
		}
	}

	sort.Strings(svc.Ports)
	return svc
}
