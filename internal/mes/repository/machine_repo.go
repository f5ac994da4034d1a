package repository

import "github.com/bitfantasy/nimo-mes/internal/mes/entity"

type MachineRepository struct {
	machines     *memTable[entity.Machine]
	integrations *memTable[entity.Integration]
	telemetry    []entity.TelemetryData
}

func NewMachineRepository(machines []entity.Machine, integrations []entity.Integration, telemetry []entity.TelemetryData) (*MachineRepository, error) {
	r := &MachineRepository{
		machines: newMemTable(
			func(m *entity.Machine) string { return m.ID },
			func(m *entity.Machine) *entity.Machine { c := *m; return &c },
		),
		integrations: newMemTable(
			func(i *entity.Integration) string { return i.ID },
			func(i *entity.Integration) *entity.Integration { return i.Clone() },
		),
		telemetry: append([]entity.TelemetryData{}, telemetry...),
	}
	for i := range machines {
		if _, err := r.machines.insert(&machines[i]); err != nil {
			return nil, err
		}
	}
	for i := range integrations {
		if _, err := r.integrations.insert(&integrations[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *MachineRepository) ListMachines() []entity.Machine {
	return r.machines.list(nil)
}

func (r *MachineRepository) GetMachine(id string) (*entity.Machine, error) {
	return r.machines.get(id)
}

// ListTelemetry optional exact-match machine filter
func (r *MachineRepository) ListTelemetry(machineID string) []entity.TelemetryData {
	out := []entity.TelemetryData{}
	for _, t := range r.telemetry {
		if machineID == "" || t.MachineID == machineID {
			out = append(out, t)
		}
	}
	return out
}

func (r *MachineRepository) ListIntegrations() []entity.Integration {
	return r.integrations.list(nil)
}

func (r *MachineRepository) UpdateIntegration(id string, fn func(i *entity.Integration) error) (*entity.Integration, error) {
	return r.integrations.update(id, fn)
}
