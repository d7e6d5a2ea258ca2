package testing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// MockContractRepo is an in-memory implementation of domain.ContractRepo for testing.
type MockContractRepo struct {
	mu        sync.RWMutex
	contracts map[string]domain.Contract
	err       error
}

// NewMockContractRepo creates an empty mock contract repository.
func NewMockContractRepo() *MockContractRepo {
	return &MockContractRepo{contracts: make(map[string]domain.Contract)}
}

// SetError makes every subsequent call return err.
func (m *MockContractRepo) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Seed inserts contracts directly, bypassing Create.
func (m *MockContractRepo) Seed(contracts ...domain.Contract) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range contracts {
		m.contracts[c.ID] = c
	}
}

func (m *MockContractRepo) FindByID(_ context.Context, id string) (*domain.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.contracts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MockContractRepo) FindAll(_ context.Context) ([]domain.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Contract, 0, len(m.contracts))
	for _, c := range m.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockContractRepo) Create(_ context.Context, c domain.Contract) (domain.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Contract{}, m.err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.contracts[c.ID] = c
	return c, nil
}

func (m *MockContractRepo) Update(_ context.Context, id string, patch domain.Contract) (domain.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Contract{}, m.err
	}
	patch.ID = id
	m.contracts[id] = patch
	return patch, nil
}

func (m *MockContractRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.contracts[id]; !ok {
		return false, nil
	}
	delete(m.contracts, id)
	return true, nil
}

// MockRiskScoreRepo is an in-memory implementation of domain.RiskScoreRepo for testing.
type MockRiskScoreRepo struct {
	mu     sync.RWMutex
	scores map[string]domain.RiskScore
	err    error
}

// NewMockRiskScoreRepo creates an empty mock risk score repository.
func NewMockRiskScoreRepo() *MockRiskScoreRepo {
	return &MockRiskScoreRepo{scores: make(map[string]domain.RiskScore)}
}

// SetError makes every subsequent call return err.
func (m *MockRiskScoreRepo) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Seed inserts scores directly, bypassing Create.
func (m *MockRiskScoreRepo) Seed(scores ...domain.RiskScore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range scores {
		m.scores[s.ContractID] = s
	}
}

func (m *MockRiskScoreRepo) FindByContractID(_ context.Context, contractID string) (*domain.RiskScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.scores[contractID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MockRiskScoreRepo) Create(_ context.Context, s domain.RiskScore) (domain.RiskScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.RiskScore{}, m.err
	}
	m.scores[s.ContractID] = s
	return s, nil
}

func (m *MockRiskScoreRepo) Update(_ context.Context, s domain.RiskScore) (domain.RiskScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.RiskScore{}, m.err
	}
	m.scores[s.ContractID] = s
	return s, nil
}

func (m *MockRiskScoreRepo) DeleteByContractID(_ context.Context, contractID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.scores, contractID)
	return nil
}

// MockRiskHistoryRepo is an in-memory implementation of domain.RiskHistoryRepo for testing.
type MockRiskHistoryRepo struct {
	mu        sync.RWMutex
	histories map[string]domain.RiskHistory
	err       error
}

// NewMockRiskHistoryRepo creates an empty mock risk history repository.
func NewMockRiskHistoryRepo() *MockRiskHistoryRepo {
	return &MockRiskHistoryRepo{histories: make(map[string]domain.RiskHistory)}
}

// SetError makes every subsequent call return err.
func (m *MockRiskHistoryRepo) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockRiskHistoryRepo) FindByContractID(_ context.Context, contractID string) (*domain.RiskHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	h, ok := m.histories[contractID]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (m *MockRiskHistoryRepo) Create(_ context.Context, contractID string, entry domain.RiskHistoryEntry) (domain.RiskHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.RiskHistory{}, m.err
	}
	h := m.histories[contractID]
	h.ContractID = contractID
	h.Entries = append(h.Entries, entry)
	if len(h.Entries) > domain.MaxHistoryEntries {
		h.Entries = h.Entries[len(h.Entries)-domain.MaxHistoryEntries:]
	}
	m.histories[contractID] = h
	return h, nil
}

func (m *MockRiskHistoryRepo) Update(_ context.Context, h domain.RiskHistory) (domain.RiskHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.RiskHistory{}, m.err
	}
	m.histories[h.ContractID] = h
	return h, nil
}

func (m *MockRiskHistoryRepo) DeleteByContractID(_ context.Context, contractID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.histories, contractID)
	return nil
}

// MockAIAdapter is a scriptable implementation of domain.AIAdapter for testing.
type MockAIAdapter struct {
	mu        sync.RWMutex
	responses []domain.AIResponse
	calls     []domain.AIRequest
	err       error
}

// NewMockAIAdapter creates a mock AI adapter with no scripted responses.
func NewMockAIAdapter() *MockAIAdapter {
	return &MockAIAdapter{}
}

// SetError makes every subsequent call return err.
func (m *MockAIAdapter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// QueueResponse appends a response to be returned by successive Call invocations,
// in FIFO order. Once exhausted, the last queued response repeats.
func (m *MockAIAdapter) QueueResponse(resp domain.AIResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns every request passed to Call, in order.
func (m *MockAIAdapter) Calls() []domain.AIRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.AIRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockAIAdapter) Call(_ context.Context, req domain.AIRequest) (domain.AIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return domain.AIResponse{}, m.err
	}
	if len(m.responses) == 0 {
		return domain.AIResponse{Error: "no response queued"}, nil
	}
	idx := len(m.calls) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}
