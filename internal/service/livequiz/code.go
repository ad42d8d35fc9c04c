package livequiz

import "math/rand"

// codeAlphabet исключает 0, 1, I и O, чтобы код нельзя было прочитать неверно
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength — длина кода сессии
const CodeLength = 6

// MaxCodeAttempts — число попыток сгенерировать свободный код,
// прежде чем создание сессии провалится
const MaxCodeAttempts = 20

// Слова для автоматических никнеймов
var (
	nicknameAdjectives = []string{
		"Sunny", "Rocket", "Brave", "Clever", "Happy", "Chill",
		"Mighty", "Rapid", "Cosmic", "Bouncy", "Quiet", "Zippy",
	}
	nicknameAnimals = []string{
		"Panda", "Koala", "Tiger", "Otter", "Fox", "Dolphin",
		"Eagle", "Turtle", "Penguin", "Lemur", "Rabbit", "Seal",
	}
)

// GenerateCode возвращает случайный шестизначный код сессии
func GenerateCode(rng *rand.Rand) string {
	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// GenerateNickname возвращает случайный никнейм вида "прилагательное+животное",
// оба слова выбираются независимо
func GenerateNickname(rng *rand.Rand) string {
	adjective := nicknameAdjectives[rng.Intn(len(nicknameAdjectives))]
	animal := nicknameAnimals[rng.Intn(len(nicknameAnimals))]
	return adjective + " " + animal
}
