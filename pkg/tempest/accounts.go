package tempest

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Account is one entry of the tempest accounts file.
type Account struct {
	Username    string   `yaml:"username"`
	ProjectName string   `yaml:"project_name"`
	Password    string   `yaml:"password"`
	DomainName  string   `yaml:"domain_name"`
	Roles       []string `yaml:"roles"`
}

// RenderAccounts produces the accounts.yaml text matching the rendered
// configuration's administrative credentials.
func (builder *Builder) RenderAccounts() (string, error) {
	if builder.errorMsg != "" {
		return "", fmt.Errorf(builder.errorMsg)
	}

	ctx := builder.Definition.withDefaults()

	accounts := []Account{
		{
			Username:    ctx.AdminUsername,
			ProjectName: ctx.AdminProjectName,
			Password:    ctx.AdminPassword,
			DomainName:  ctx.AdminDomainName,
			Roles:       []string{"Admin"},
		},
	}

	rendered, err := yaml.Marshal(accounts)
	if err != nil {
		return "", fmt.Errorf("failed to render accounts file: %w", err)
	}

	return string(rendered), nil
}
