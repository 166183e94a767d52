package service

import (
	"fmt"

	"seguradora/internal/apierror"
	"seguradora/internal/model"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// Autorizador decides whether a profile may run an operation.
type Autorizador interface {
	// Autorizar fails with a permission error when exigeAdmin is set and the
	// profile holds no write grant.
	Autorizar(perfil string, exigeAdmin bool) error
}

const modeloRBAC = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const (
	recursoBackoffice = "backoffice"
	acaoLeitura       = "leitura"
	acaoEscrita       = "escrita"
)

type casbinAutorizador struct {
	enforcer *casbin.Enforcer
}

// NewAutorizador builds an in-memory casbin enforcer: every profile reads,
// only admin writes.
func NewAutorizador() (Autorizador, error) {
	m, err := casbinmodel.NewModelFromString(modeloRBAC)
	if err != nil {
		return nil, fmt.Errorf("autorizador: modelo: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("autorizador: enforcer: %w", err)
	}
	politicas := [][]string{
		{model.PerfilAdmin, recursoBackoffice, acaoEscrita},
		{model.PerfilAdmin, recursoBackoffice, acaoLeitura},
		{model.PerfilComum, recursoBackoffice, acaoLeitura},
		{model.PerfilCliente, recursoBackoffice, acaoLeitura},
	}
	for _, p := range politicas {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("autorizador: política %v: %w", p, err)
		}
	}
	return &casbinAutorizador{enforcer: e}, nil
}

func (a *casbinAutorizador) Autorizar(perfil string, exigeAdmin bool) error {
	if !exigeAdmin {
		return nil
	}
	ok, err := a.enforcer.Enforce(perfil, recursoBackoffice, acaoEscrita)
	if err != nil || !ok {
		return apierror.Forbidden()
	}
	return nil
}
