package booking

import (
	"context"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
)

// ListClients resume a carteira de clientes a partir dos agendamentos
// (não existe cadastro próprio de cliente).
type ListClients struct {
	repo schedule.Repository
}

func NewListClients(repo schedule.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(ctx context.Context) ([]schedule.ClientRecord, error) {
	return uc.repo.ListClients(ctx)
}
