package models

import "testing"

func TestIsTransitionStatus(t *testing.T) {
	// Из pending можно перейти только в accepted или rejected
	if !IsTransitionStatus(StatusAccepted) {
		t.Error("accepted должен быть допустимым целевым статусом")
	}
	if !IsTransitionStatus(StatusRejected) {
		t.Error("rejected должен быть допустимым целевым статусом")
	}
	if IsTransitionStatus(StatusPending) {
		t.Error("переход обратно в pending недопустим")
	}
	if IsTransitionStatus("canceled") {
		t.Error("canceled не входит в модель статусов")
	}
	if IsTransitionStatus("") {
		t.Error("пустой статус недопустим")
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAccepted, StatusRejected} {
		if !IsValidStatus(s) {
			t.Errorf("статус %q должен быть допустимым", s)
		}
	}
	if IsValidStatus("canceled") {
		t.Error("canceled не входит в модель статусов")
	}
}

func TestIsTerminal(t *testing.T) {
	p := ExchangeProposal{Status: StatusPending}
	if p.IsTerminal() {
		t.Error("pending не является конечным статусом")
	}

	p.Status = StatusAccepted
	if !p.IsTerminal() {
		t.Error("accepted является конечным статусом")
	}

	p.Status = StatusRejected
	if !p.IsTerminal() {
		t.Error("rejected является конечным статусом")
	}
}
