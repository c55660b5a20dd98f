// Package storage fornece o armazém de blobs chaveado por string usado por todos
// os ledgers. O armazém é cego quanto ao formato dos valores: snapshots inteiros
// são serializados e gravados sob uma única chave, sem atomicidade entre chaves.
package storage

type Store interface {
	// Get retorna o blob armazenado sob a chave. O segundo retorno indica se a
	// chave existia; chave ausente não é erro.
	Get(key string) (string, bool, error)
	// Set grava o blob por inteiro, substituindo qualquer valor anterior.
	Set(key, value string) error
	// Remove descarta a chave. Remover chave inexistente é um no-op.
	Remove(key string) error
}
