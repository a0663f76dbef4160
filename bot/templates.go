package bot

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hive-tools/hivekit/ops"
)

// templateFile is the TOML document LoadTemplates parses.
type templateFile struct {
	Posts []template `toml:"post"`
}

type template struct {
	Title       string   `toml:"title"`
	Body        string   `toml:"body"`
	Tags        []string `toml:"tags"`
	Description string   `toml:"description"`
	Image       string   `toml:"image"`
}

// LoadTemplates reads a TOML file containing a [[post]] table per template
// and returns the templates in file order. The file is read once; the bot
// never watches it.
func LoadTemplates(path string) ([]ops.PostData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var file templateFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	posts := make([]ops.PostData, len(file.Posts))
	for i, t := range file.Posts {
		posts[i] = ops.PostData{
			Title:       t.Title,
			Body:        t.Body,
			Tags:        t.Tags,
			Description: t.Description,
			Image:       t.Image,
		}
	}
	return posts, nil
}
