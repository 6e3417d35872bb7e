package schedule

// EffectiveDuration retorna a duração em minutos que o serviço ocupa na
// agenda. Serviços de 75 minutos ocupam um bloco de 1h30 (regra da casa).
func EffectiveDuration(durationMin int) int {
	if durationMin == 75 {
		return 90
	}
	return durationMin
}
