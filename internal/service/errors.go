package service

import "seguradora/internal/apierror"

var (
	ErrClienteNaoEncontrado  = apierror.NotFound("Cliente não encontrado.")
	ErrSeguroNaoEncontrado   = apierror.NotFound("Seguro não encontrado.")
	ErrApoliceNaoEncontrada  = apierror.NotFound("Apólice não encontrada.")
	ErrSinistroNaoEncontrado = apierror.NotFound("Sinistro não encontrado.")

	ErrApoliceNaoAtiva    = apierror.BusinessRule("Apólice não está ativa.")
	ErrApoliceJaCancelada = apierror.BusinessRule("Apólice já está cancelada.")
	ErrReativacaoProibida = apierror.BusinessRule("Não é permitido reativar uma apólice cancelada.")
	ErrClienteComVinculos = apierror.BusinessRule("Cliente possui seguros/apólices vinculados; use a exclusão forçada.")
	ErrSeguroComApolices  = apierror.BusinessRule("Seguro possui apólices vinculadas.")

	ErrCredenciaisVazias    = apierror.Invalid("username", "Informe usuário e senha.")
	ErrCredenciaisInvalidas = apierror.Unauthorized("Usuário ou senha inválidos.")
	ErrUsuarioInativo       = apierror.Unauthorized("Este usuário está inativo.")
	ErrCPFInexistente       = apierror.Invalid("cliente_cpf", "CPF não existe em clientes.")
)
